package apt

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// The snapshot format is a YAML rendering of the package universe:
// what the index parsers would produce, frozen to a file. It feeds the
// CLI's offline mode and the test fixtures.

type snapshotFile struct {
	Packages []snapshotPackage `yaml:"packages"`
}

type snapshotPackage struct {
	Name      string            `yaml:"name"`
	Essential bool              `yaml:"essential,omitempty"`
	Important bool              `yaml:"important,omitempty"`
	Auto      bool              `yaml:"auto,omitempty"`
	Hold      bool              `yaml:"hold,omitempty"`
	Installed string            `yaml:"installed,omitempty"`
	State     string            `yaml:"state,omitempty"`
	Versions  []snapshotVersion `yaml:"versions"`
}

type snapshotVersion struct {
	Version       string           `yaml:"version"`
	Arch          string           `yaml:"arch"`
	Section       string           `yaml:"section,omitempty"`
	Size          uint64           `yaml:"size,omitempty"`
	InstalledSize uint64           `yaml:"installed-size,omitempty"`
	Summary       string           `yaml:"summary,omitempty"`
	Description   string           `yaml:"description,omitempty"`
	Source        string           `yaml:"source,omitempty"`
	Priority      int              `yaml:"priority,omitempty"`
	Depends       []string         `yaml:"depends,omitempty"`
	PreDepends    []string         `yaml:"pre-depends,omitempty"`
	Recommends    []string         `yaml:"recommends,omitempty"`
	Conflicts     []string         `yaml:"conflicts,omitempty"`
	Obsoletes     []string         `yaml:"obsoletes,omitempty"`
	Provides      []string         `yaml:"provides,omitempty"`
	Files         []snapshotOrigin `yaml:"files,omitempty"`
}

type snapshotOrigin struct {
	Origin    string `yaml:"origin,omitempty"`
	Suite     string `yaml:"suite,omitempty"`
	Component string `yaml:"component,omitempty"`
	Site      string `yaml:"site,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Hash      string `yaml:"hash,omitempty"`
	NotSource bool   `yaml:"not-source,omitempty"`
}

// LoadSnapshot reads a package universe from a YAML file and returns
// a finalized cache.
func LoadSnapshot(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseSnapshot(data)
}

// ParseSnapshot builds a finalized cache from YAML snapshot bytes.
func ParseSnapshot(data []byte) (*Cache, error) {
	var snap snapshotFile
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	cache := NewCache()

	for _, sp := range snap.Packages {
		if sp.Name == "" {
			return nil, errors.New("snapshot package with empty name")
		}

		pkg := cache.AddPackage(sp.Name)
		p := cache.Pkg(pkg)
		p.Essential = sp.Essential
		p.Important = sp.Important
		p.Auto = sp.Auto
		p.Hold = sp.Hold

		switch sp.State {
		case "", "ok":
		case "reinstreq":
			p.InstallState = InstallStateReInstReq
		case "half-configured":
			p.InstallState = InstallStateHalfConfigured
		default:
			return nil, errors.Errorf("unknown install state %q for %s", sp.State, sp.Name)
		}

		for _, sv := range sp.Versions {
			v := Version{
				Version:       sv.Version,
				Arch:          sv.Arch,
				Section:       sv.Section,
				Size:          sv.Size,
				InstalledSize: sv.InstalledSize,
				Summary:       sv.Summary,
				Description:   sv.Description,
				SourcePkg:     sv.Source,
				Priority:      sv.Priority,
				Provides:      sv.Provides,
			}

			for _, f := range sv.Files {
				v.Files = append(v.Files, OriginRecord(f))
			}

			var err error
			if v.Depends, err = appendDepGroups(v.Depends, DepDepends, sv.Depends); err != nil {
				return nil, errors.Wrap(err, sp.Name)
			}
			if v.Depends, err = appendDepGroups(v.Depends, DepPreDepends, sv.PreDepends); err != nil {
				return nil, errors.Wrap(err, sp.Name)
			}
			if v.Depends, err = appendDepGroups(v.Depends, DepRecommends, sv.Recommends); err != nil {
				return nil, errors.Wrap(err, sp.Name)
			}
			if v.Depends, err = appendDepGroups(v.Depends, DepConflicts, sv.Conflicts); err != nil {
				return nil, errors.Wrap(err, sp.Name)
			}
			if v.Depends, err = appendDepGroups(v.Depends, DepObsoletes, sv.Obsoletes); err != nil {
				return nil, errors.Wrap(err, sp.Name)
			}

			id := cache.AddVersion(pkg, v)
			if sp.Installed != "" && sv.Version == sp.Installed {
				cache.SetInstalled(pkg, id)
			}
		}

		if sp.Installed != "" && !p.Installed() {
			return nil, errors.Errorf("%s: installed version %q not listed", sp.Name, sp.Installed)
		}
	}

	cache.Finalize()

	return cache, nil
}

func appendDepGroups(groups []DepGroup, typ DepType, specs []string) ([]DepGroup, error) {
	for _, spec := range specs {
		g, err := ParseDepGroup(typ, spec)
		if err != nil {
			return nil, err
		}

		groups = append(groups, g)
	}

	return groups, nil
}

// ParseDepGroup parses one dependency line into an or-group. The line
// holds pipe-separated alternatives of the form "name" or
// "name (op version)".
func ParseDepGroup(typ DepType, spec string) (DepGroup, error) {
	g := DepGroup{Type: typ}

	for _, alt := range strings.Split(spec, "|") {
		dep, err := ParseDepSpec(strings.TrimSpace(alt))
		if err != nil {
			return DepGroup{}, err
		}

		g.Alternatives = append(g.Alternatives, dep)
	}

	if (typ == DepConflicts || typ == DepObsoletes) && len(g.Alternatives) != 1 {
		return DepGroup{}, errors.Errorf("%s group must hold one alternative: %q", typ, spec)
	}

	return g, nil
}

// ParseDepSpec parses a single alternative: "name" or "name (op version)".
func ParseDepSpec(spec string) (Dependency, error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		if spec == "" {
			return Dependency{}, errors.New("empty dependency")
		}

		return Dependency{Target: spec}, nil
	}

	name := strings.TrimSpace(spec[:open])
	rest := strings.TrimSpace(spec[open+1:])
	end := strings.IndexByte(rest, ')')
	if name == "" || end < 0 {
		return Dependency{}, errors.Errorf("malformed dependency %q", spec)
	}

	fields := strings.Fields(rest[:end])
	if len(fields) != 2 {
		return Dependency{}, errors.Errorf("malformed constraint in %q", spec)
	}

	switch fields[0] {
	case "<<", "<", "<=", "=", "==", ">=", ">>", ">":
	default:
		return Dependency{}, errors.Errorf("unknown operator %q in %q", fields[0], spec)
	}

	return Dependency{Target: name, Op: fields[0], Version: fields[1]}, nil
}
