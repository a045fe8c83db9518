package apt

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrUnknownPackage = errors.New("package not found in cache")
	ErrUnknownVersion = errors.New("version not found in cache")
)

// Cache is the in-memory package/version arena plus the per-job
// dependency state. Build it through AddPackage/AddVersion (or the
// snapshot loader) and call Finalize before querying.
type Cache struct {
	pkgs   []Package
	vers   []Version
	byName map[string]PkgID
	state  []State

	finalized bool
}

func NewCache() *Cache {
	return &Cache{byName: make(map[string]PkgID)}
}

// AddPackage returns the handle for name, creating the record if it
// does not exist yet. Dependency targets and provided names are added
// lazily through the same path, so they share handles with real
// packages declared later.
func (c *Cache) AddPackage(name string) PkgID {
	if id, ok := c.byName[name]; ok {
		return id
	}

	id := PkgID(len(c.pkgs))
	c.pkgs = append(c.pkgs, Package{
		ID:         id,
		Name:       name,
		currentVer: NoVer,
	})
	c.byName[name] = id

	return id
}

// AddVersion appends a version record to pkg. Fields of v other than
// ID and Pkg are taken as given.
func (c *Cache) AddVersion(pkg PkgID, v Version) VerID {
	id := VerID(len(c.vers))
	v.ID = id
	v.Pkg = pkg
	c.vers = append(c.vers, v)
	c.pkgs[pkg].versions = append(c.pkgs[pkg].versions, id)
	c.finalized = false

	return id
}

// SetInstalled marks ver as the package's current version.
func (c *Cache) SetInstalled(pkg PkgID, ver VerID) {
	c.pkgs[pkg].currentVer = ver
}

// Finalize sorts version lists newest-first, wires the provides and
// reverse-dependency indexes, and resets the dependency state.
func (c *Cache) Finalize() {
	for i := range c.pkgs {
		p := &c.pkgs[i]
		sort.SliceStable(p.versions, func(a, b int) bool {
			return CompareVersions(c.vers[p.versions[a]].Version, c.vers[p.versions[b]].Version) > 0
		})
		p.providedBy = p.providedBy[:0]
		p.revDepends = p.revDepends[:0]
	}

	for i := range c.vers {
		v := &c.vers[i]
		for _, name := range v.Provides {
			target := c.AddPackage(name)
			c.pkgs[target].providedBy = append(c.pkgs[target].providedBy, v.ID)
		}

		for g := range v.Depends {
			for _, alt := range v.Depends[g].Alternatives {
				target := c.AddPackage(alt.Target)
				c.pkgs[target].revDepends = append(c.pkgs[target].revDepends, RevDep{Ver: v.ID, Group: g})
			}
		}
	}

	c.finalized = true
	c.ResetState()
}

// Pkg returns the package record for a handle.
func (c *Cache) Pkg(id PkgID) *Package {
	return &c.pkgs[id]
}

// Ver returns the version record for a handle.
func (c *Cache) Ver(id VerID) *Version {
	return &c.vers[id]
}

// PkgCount returns the number of package records; handles are
// 0..PkgCount-1.
func (c *Cache) PkgCount() int {
	return len(c.pkgs)
}

// FindPkg resolves a package name to its handle.
func (c *Cache) FindPkg(name string) (PkgID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// IsInstalled reports whether ver is the current version of its package.
func (c *Cache) IsInstalled(ver VerID) bool {
	if ver == NoVer {
		return false
	}

	return c.pkgs[c.vers[ver].Pkg].currentVer == ver
}

// PkgPriority returns the pin priority of the package's candidate
// version, falling back to the current version.
func (c *Cache) PkgPriority(pkg PkgID) int {
	if cand := c.state[pkg].Candidate; cand != NoVer {
		return c.vers[cand].Priority
	}

	if cur := c.pkgs[pkg].currentVer; cur != NoVer {
		return c.vers[cur].Priority
	}

	return 0
}

// FindVerByString scans a package's versions for an exact version
// string match.
func (c *Cache) FindVerByString(pkg PkgID, version string) VerID {
	for _, v := range c.pkgs[pkg].versions {
		if c.vers[v].Version == version {
			return v
		}
	}

	return NoVer
}

// satisfies reports whether an installed-or-planned version of the
// target package (or one of its providers) meets the constraint.
func (c *Cache) versionSatisfies(ver VerID, dep Dependency) bool {
	if ver == NoVer {
		return false
	}

	return CheckDep(c.vers[ver].Version, dep.Op, dep.Version)
}

// providerSatisfies reports whether a provider version covers dep.
// Unversioned provides only satisfy unversioned dependencies.
func (c *Cache) providerSatisfies(dep Dependency) bool {
	return !dep.Constrained()
}
