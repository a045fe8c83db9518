// Package apt models the native package library's cache as an arena of
// package and version records with stable integer handles. The handles
// stay valid for the lifetime of one Cache; a rebuild invalidates all
// of them. All mutating operations return explicit errors instead of
// the library's historical process-wide pending-error slot.
package apt

// PkgID is a stable handle into the cache's package arena.
type PkgID int

// VerID is a stable handle into the cache's version arena.
type VerID int

const (
	NoPkg PkgID = -1
	NoVer VerID = -1
)

// DepType classifies one dependency declaration.
type DepType uint8

const (
	DepDepends DepType = iota
	DepPreDepends
	DepRecommends
	DepConflicts
	DepObsoletes
)

func (d DepType) String() string {
	switch d {
	case DepDepends:
		return "Depends"
	case DepPreDepends:
		return "PreDepends"
	case DepRecommends:
		return "Recommends"
	case DepConflicts:
		return "Conflicts"
	case DepObsoletes:
		return "Obsoletes"
	}

	return "Unknown"
}

// important dependency types participate in broken-ness checks.
func (d DepType) important() bool {
	return d == DepDepends || d == DepPreDepends
}

// Dependency is one alternative inside an or-group: a target package
// name plus an optional version constraint.
type Dependency struct {
	Target  string
	Op      string // "", "<<", "<=", "=", ">=", ">>"
	Version string
}

// Constrained reports whether the alternative carries a version bound.
func (d Dependency) Constrained() bool {
	return d.Op != ""
}

// DepGroup is an or-group of alternatives sharing one dependency type.
// Conflicts and Obsoletes groups always hold a single alternative.
type DepGroup struct {
	Type         DepType
	Alternatives []Dependency
}

// OriginRecord ties a version to one index file it was parsed from.
type OriginRecord struct {
	Origin    string
	Suite     string
	Component string
	Site      string
	URL       string // archive URI of the package file
	Hash      string
	NotSource bool // e.g. the dpkg status file
}

// Version is one concrete version record of a package.
type Version struct {
	ID            VerID
	Pkg           PkgID
	Version       string
	Arch          string
	Section       string // optionally "component/section"
	Size          uint64
	InstalledSize uint64
	Summary       string
	Description   string
	SourcePkg     string
	Priority      int
	Depends       []DepGroup
	Provides      []string
	Files         []OriginRecord
}

// Downloadable reports whether any source index lists this version.
func (v *Version) Downloadable() bool {
	for i := range v.Files {
		if !v.Files[i].NotSource {
			return true
		}
	}

	return false
}

// File returns the first source origin record, falling back to the
// first record of any kind.
func (v *Version) File() *OriginRecord {
	for i := range v.Files {
		if !v.Files[i].NotSource {
			return &v.Files[i]
		}
	}

	if len(v.Files) > 0 {
		return &v.Files[0]
	}

	return nil
}

// InstallState mirrors the package manager's half-installed bookkeeping.
type InstallState uint8

const (
	InstallStateOk InstallState = iota
	InstallStateReInstReq
	InstallStateHalfConfigured
)

// Package is one named entry in the cache. A package with no versions
// of its own is virtual: it exists only through Provides declarations
// (providedBy) or as a dependency target.
type Package struct {
	ID           PkgID
	Name         string
	Essential    bool
	Important    bool
	Auto         bool // installed as a dependency, not by user request
	Hold         bool
	InstallState InstallState

	// versions is sorted newest-first; currentVer is the installed one.
	versions   []VerID
	currentVer VerID

	// providedBy lists versions of other packages providing this name.
	providedBy []VerID

	// revDepends indexes versions that declare a dependency on this
	// name, paired with the group index inside that version.
	revDepends []RevDep
}

// RevDep is a reverse-dependency edge: the declaring version and the
// or-group index within it.
type RevDep struct {
	Ver   VerID
	Group int
}

// Versions returns the package's own versions, newest first.
func (p *Package) Versions() []VerID {
	return p.versions
}

// CurrentVer returns the installed version handle or NoVer.
func (p *Package) CurrentVer() VerID {
	return p.currentVer
}

// Installed reports whether some version of the package is installed.
func (p *Package) Installed() bool {
	return p.currentVer != NoVer
}

// ProvidedBy returns the versions of other packages providing this name.
func (p *Package) ProvidedBy() []VerID {
	return p.providedBy
}

// RevDepends returns the reverse-dependency edges onto this name.
func (p *Package) RevDepends() []RevDep {
	return p.revDepends
}

// DependencyOnly reports whether the package exists only as a
// dependency target: no own versions and no providers.
func (p *Package) DependencyOnly() bool {
	return len(p.versions) == 0 && len(p.providedBy) == 0
}

// Virtual reports whether the package has no versions of its own.
func (p *Package) Virtual() bool {
	return len(p.versions) == 0
}
