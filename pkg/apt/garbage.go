package apt

import (
	"github.com/imz/PackageKit/pkg/stringset"
)

// Garbage computes the names of auto-installed packages that no
// manually-requested package will need after the pending operations
// run. It walks the dependency closure of every manual root in the
// post-transaction world; auto packages left unvisited are orphans.
func (c *Cache) Garbage() stringset.StringSet {
	needed := make([]bool, len(c.pkgs))
	var queue []PkgID

	for i := range c.pkgs {
		pkg := PkgID(i)
		ver := c.instVer(pkg)
		if ver == NoVer {
			continue
		}

		manual := !c.state[pkg].Auto
		if manual || c.pkgs[pkg].Essential || c.pkgs[pkg].Important {
			needed[pkg] = true
			queue = append(queue, pkg)
		}
	}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]

		ver := c.instVer(pkg)
		if ver == NoVer {
			continue
		}

		for _, g := range c.vers[ver].Depends {
			if !g.Type.important() && g.Type != DepRecommends {
				continue
			}

			for _, alt := range g.Alternatives {
				target, ok := c.byName[alt.Target]
				if !ok {
					continue
				}

				for _, dep := range c.depProviders(target, alt) {
					if !needed[dep] {
						needed[dep] = true
						queue = append(queue, dep)
					}
				}
			}
		}
	}

	garbage := make(stringset.StringSet)

	for i := range c.pkgs {
		pkg := PkgID(i)
		if c.instVer(pkg) == NoVer || needed[pkg] {
			continue
		}

		if c.state[pkg].Auto {
			garbage.Set(c.pkgs[pkg].Name)
		}
	}

	return garbage
}

// depProviders returns the packages that actively satisfy alt in the
// post-transaction world: the target itself and any provider owners.
func (c *Cache) depProviders(target PkgID, alt Dependency) []PkgID {
	var out []PkgID

	if c.versionSatisfies(c.instVer(target), alt) {
		out = append(out, target)
	}

	for _, pv := range c.pkgs[target].providedBy {
		owner := c.vers[pv].Pkg
		if c.instVer(owner) == pv && c.providerSatisfies(alt) {
			out = append(out, owner)
		}
	}

	return out
}
