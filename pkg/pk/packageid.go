package pk

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// PackageID is the daemon's stable composite package key,
// serialized as "name;version;arch;data".
//
// The data field carries the origin repository id and, for installed
// packages, an "installed:" prefix. The transient "+auto:"/"+manual:"
// prefixes encode a user intent override during resolution and are
// never emitted back to the daemon.
type PackageID struct {
	Name    string
	Version string
	Arch    string
	Data    string
}

const (
	installedPrefix = "installed:"
	autoPrefix      = "+auto:"
	manualPrefix    = "+manual:"
)

// Action is the user-intent tag carried in-band by a package-ID.
type Action int

const (
	ActionNone Action = iota
	ActionInstallAuto
	ActionInstallManual
)

var ErrMalformedID = errors.New("malformed package id")

func (p PackageID) String() string {
	return p.Name + ";" + p.Version + ";" + p.Arch + ";" + p.Data
}

// Installed reports whether the data field marks the package installed.
func (p PackageID) Installed() bool {
	return strings.HasPrefix(p.Data, installedPrefix)
}

// Intent extracts the transient install-intent tag from the data field.
func (p PackageID) Intent() Action {
	switch {
	case strings.HasPrefix(p.Data, autoPrefix):
		return ActionInstallAuto
	case strings.HasPrefix(p.Data, manualPrefix):
		return ActionInstallManual
	}

	return ActionNone
}

// SplitPackageID parses the four ';'-separated fields of a package-ID.
func SplitPackageID(id string) (PackageID, error) {
	parts := strings.Split(id, ";")
	if len(parts) != 4 || parts[0] == "" {
		return PackageID{}, errors.Wrap(ErrMalformedID, id)
	}

	return PackageID{
		Name:    parts[0],
		Version: parts[1],
		Arch:    parts[2],
		Data:    parts[3],
	}, nil
}

// ValidPackageID reports whether id parses as a package-ID.
func ValidPackageID(id string) bool {
	_, err := SplitPackageID(id)
	return err == nil
}

var originSanitizer = regexp.MustCompile(`[\s[:cntrl:][:punct:]]+`)

func sanitizeOriginField(s string) string {
	return originSanitizer.ReplaceAllString(strings.ToLower(s), "_")
}

// BuildOriginID derives the repository origin id embedded in the data
// field from a version's index-file metadata. Separator characters are
// squashed so the result never conflicts with the ';' and ':' used by
// the id format itself.
func BuildOriginID(origin, suite, component string) string {
	if origin == "" || suite == "" {
		return "local"
	}

	if component == "" {
		return "invalid"
	}

	// "ALT Linux Team"/"ALT Linux p11" repeats the vendor in both
	// fields; fold it so ids stay short.
	const altPrefix = "ALT Linux "
	if strings.EqualFold(origin, "ALT Linux Team") &&
		len(suite) > len(altPrefix) &&
		strings.EqualFold(suite[:len(altPrefix)], altPrefix) {
		suite = suite[len(altPrefix):]
		origin = strings.TrimSpace(altPrefix)
	}

	return sanitizeOriginField(origin) + "-" +
		sanitizeOriginField(suite) + "-" +
		sanitizeOriginField(component)
}

// InstalledData builds the data field for an installed package.
func InstalledData(originID string) string {
	return installedPrefix + originID
}
