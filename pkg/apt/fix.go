package apt

import (
	"context"

	"github.com/pkg/errors"
)

var ErrBrokenUnfixable = errors.New("unable to correct broken packages")

// ApplyStatus corrects half-installed packages: anything the package
// manager left mid-flight is re-marked for installation of its current
// version, or for removal when no version remains.
func (c *Cache) ApplyStatus() error {
	for i := range c.pkgs {
		p := &c.pkgs[i]
		if p.InstallState == InstallStateOk {
			continue
		}

		if p.currentVer != NoVer {
			c.SetCandidateVersion(p.currentVer)
			c.MarkInstall(p.ID, false, false)
			continue
		}

		c.MarkDelete(p.ID)
	}

	return nil
}

// FixBroken attempts to repair packages broken in the installed state
// by pulling in their candidate versions and resolving.
func (c *Cache) FixBroken(ctx context.Context) error {
	for i := range c.pkgs {
		pkg := PkgID(i)
		if !c.NowBroken(pkg) {
			continue
		}

		if c.state[pkg].Candidate != NoVer {
			c.MarkInstall(pkg, false, true)
		}
	}

	if err := NewResolver(c).Resolve(ctx); err != nil && c.BrokenCount() != 0 {
		return errors.Wrap(ErrBrokenUnfixable, err.Error())
	}

	if c.BrokenCount() != 0 {
		return ErrBrokenUnfixable
	}

	return nil
}

// MinimizeUpgrade drops upgrades that are not needed to keep the
// dependency state consistent, so repair passes touch as little as
// possible.
func (c *Cache) MinimizeUpgrade() error {
	for changed := true; changed; {
		changed = false

		for i := range c.pkgs {
			pkg := PkgID(i)
			if !c.Upgrade(pkg) {
				continue
			}

			saved := c.state[pkg]
			c.MarkKeep(pkg)

			if c.InstBroken(pkg) || c.BrokenCount() != 0 {
				c.state[pkg] = saved
				continue
			}

			changed = true
		}
	}

	return nil
}

// DistUpgrade marks every upgradable package for installation of its
// candidate and resolves the result. Held packages are skipped.
func (c *Cache) DistUpgrade(ctx context.Context) error {
	resolver := NewResolver(c)

	for i := range c.pkgs {
		pkg := PkgID(i)
		if c.pkgs[pkg].Hold {
			continue
		}

		if c.Upgradable(pkg) {
			c.MarkInstall(pkg, false, true)
			resolver.Protect(pkg)
		}
	}

	if err := resolver.Resolve(ctx); err != nil && c.BrokenCount() != 0 {
		return err
	}

	return nil
}
