package apt

import (
	"context"

	"github.com/pkg/errors"
)

var ErrResolveFailed = errors.New("unable to resolve dependencies")

// Resolver is the scored problem resolver: it repairs broken
// dependency state around a protected core of explicitly requested
// operations. Protected packages are never reverted; everything else
// may be installed, kept back or removed to reach a consistent state.
type Resolver struct {
	cache     *Cache
	protected map[PkgID]bool
	remove    map[PkgID]bool
}

func NewResolver(cache *Cache) *Resolver {
	return &Resolver{
		cache:     cache,
		protected: make(map[PkgID]bool),
		remove:    make(map[PkgID]bool),
	}
}

// Clear drops any per-package resolver hints.
func (r *Resolver) Clear(pkg PkgID) {
	delete(r.protected, pkg)
	delete(r.remove, pkg)
}

// Protect pins the package's pending operation against reversal.
func (r *Resolver) Protect(pkg PkgID) {
	r.protected[pkg] = true
}

// Remove biases the resolver towards removing the package when it is
// implicated in a conflict.
func (r *Resolver) Remove(pkg PkgID) {
	r.remove[pkg] = true
}

const maxResolvePasses = 10

// Resolve iterates over broken packages and repairs them: protected
// packages get their missing dependencies auto-installed, unprotected
// ones are reverted (or removed, when hinted or conflicting with a
// protected install). The caller tolerates an error here as long as
// BrokenCount afterwards is zero.
func (r *Resolver) Resolve(ctx context.Context) error {
	c := r.cache

	for pass := 0; pass < maxResolvePasses; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		progress := false

		for i := range c.pkgs {
			pkg := PkgID(i)
			if !c.InstBroken(pkg) {
				continue
			}

			if r.fixBrokenPkg(pkg) {
				progress = true
			}
		}

		if c.BrokenCount() == 0 {
			return nil
		}

		if !progress {
			break
		}
	}

	if c.BrokenCount() == 0 {
		return nil
	}

	return ErrResolveFailed
}

func (r *Resolver) fixBrokenPkg(pkg PkgID) bool {
	c := r.cache
	ver := c.instVer(pkg)
	if ver == NoVer {
		return false
	}

	changed := false

	for _, g := range c.vers[ver].Depends {
		if !c.groupSatisfied(pkg, g, viewInstall) {
			if g.Type == DepConflicts || g.Type == DepObsoletes {
				changed = r.settleConflict(pkg, g) || changed
				continue
			}

			if g.Type.important() {
				changed = r.settleMissing(pkg, g) || changed
			}
		}
	}

	return changed
}

// settleMissing tries to install an alternative for an unsatisfied
// positive or-group; when nothing is installable and the owner is not
// protected, the owner's change is reverted instead.
func (r *Resolver) settleMissing(pkg PkgID, g DepGroup) bool {
	c := r.cache

	for _, alt := range g.Alternatives {
		target, ok := c.byName[alt.Target]
		if !ok {
			continue
		}

		if r.remove[target] || c.state[target].Mode == ModeDelete && r.protected[target] {
			continue
		}

		cand := c.state[target].Candidate
		if cand != NoVer && c.versionSatisfies(cand, alt) {
			c.MarkInstall(target, false, true)
			return true
		}

		for _, pv := range c.pkgs[target].providedBy {
			owner := c.vers[pv].Pkg
			if c.providerSatisfies(alt) && !r.remove[owner] && c.state[owner].Candidate != NoVer {
				c.MarkInstall(owner, false, true)
				return true
			}
		}
	}

	if !r.protected[pkg] {
		if c.state[pkg].Mode == ModeInstall && !c.pkgs[pkg].Installed() {
			c.MarkKeep(pkg)
		} else if c.pkgs[pkg].Installed() {
			c.MarkDelete(pkg)
		} else {
			c.MarkKeep(pkg)
		}

		return true
	}

	return false
}

// settleConflict reverts or removes the unprotected side of a conflict.
func (r *Resolver) settleConflict(pkg PkgID, g DepGroup) bool {
	c := r.cache

	for _, alt := range g.Alternatives {
		target, ok := c.byName[alt.Target]
		if !ok || target == pkg {
			continue
		}

		if !c.versionSatisfies(c.activeVer(target, viewInstall), alt) {
			continue
		}

		if !r.protected[target] {
			if c.pkgs[target].Installed() {
				c.MarkDelete(target)
			} else {
				c.MarkKeep(target)
			}

			return true
		}

		if !r.protected[pkg] {
			if c.pkgs[pkg].Installed() && c.state[pkg].Mode != ModeInstall {
				c.MarkDelete(pkg)
			} else {
				c.MarkKeep(pkg)
			}

			return true
		}
	}

	return false
}
