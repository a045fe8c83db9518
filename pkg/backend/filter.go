package backend

import (
	"strings"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

var develSuffixes = []string{"-devel", "-devel-static", "-debuginfo", "-checkinstall"}

// splitSection breaks "component/section" apart; a bare section belongs
// to the main component.
func splitSection(section string) (component, name string) {
	if i := strings.LastIndex(section, "/"); i >= 0 {
		return section[:i], section[i+1:]
	}

	return "main", section
}

// matchPackage evaluates the pairwise filters against one version.
// Every requested filter must hold; the downloaded filter is applied
// separately as it needs the fetcher.
func (j *AptJob) matchPackage(ver apt.VerID, filters pk.Filter) bool {
	v := j.cache.Ver(ver)
	pkg := j.cache.Pkg(v.Pkg)
	component, section := splitSection(v.Section)

	installed := pkg.CurrentVer() == ver
	if filters.Has(pk.FilterInstalled) && !installed {
		return false
	}

	if filters.Has(pk.FilterNotInstalled) && installed {
		return false
	}

	if filters.Has(pk.FilterDevelopment) || filters.Has(pk.FilterNotDevelopment) {
		devel := section == "devel" || section == "libdevel"
		for _, suffix := range develSuffixes {
			if strings.HasSuffix(pkg.Name, suffix) {
				devel = true
				break
			}
		}

		if filters.Has(pk.FilterDevelopment) && !devel {
			return false
		}

		if filters.Has(pk.FilterNotDevelopment) && devel {
			return false
		}
	}

	if filters.Has(pk.FilterGui) || filters.Has(pk.FilterNotGui) {
		gui := section == "x11" || section == "gnome" ||
			section == "kde" || section == "graphics"

		if filters.Has(pk.FilterGui) && !gui {
			return false
		}

		if filters.Has(pk.FilterNotGui) && gui {
			return false
		}
	}

	if filters.Has(pk.FilterFree) || filters.Has(pk.FilterNotFree) {
		free := component == "main" || component == "universe"

		if filters.Has(pk.FilterFree) && !free {
			return false
		}

		if filters.Has(pk.FilterNotFree) && free {
			return false
		}
	}

	return true
}

// filterPackages shrinks a result set to the versions passing the job's
// filters, preserving order.
func (j *AptJob) filterPackages(pkgs []PkgInfo, filters pk.Filter) []PkgInfo {
	out := pkgs[:0:0]
	for _, info := range pkgs {
		if j.matchPackage(info.Ver, filters) {
			out = append(out, info)
		}
	}

	if filters.Has(pk.FilterDownloaded) {
		out = j.filterDownloaded(out)
	}

	return out
}

// filterDownloaded keeps only the versions whose archives are already
// present in the archive directory. The check runs a marking dry run
// over a state snapshot so the live resolver state is untouched.
func (j *AptJob) filterDownloaded(pkgs []PkgInfo) []PkgInfo {
	snapshot := j.cache.SaveState()
	defer j.cache.RestoreState(snapshot)

	for _, autoInst := range []bool{false, true} {
		for _, info := range pkgs {
			v := j.cache.Ver(info.Ver)
			if j.cache.Pkg(v.Pkg).CurrentVer() == info.Ver {
				continue
			}

			j.cache.SetCandidateVersion(info.Ver)
			j.cache.MarkInstall(v.Pkg, true, autoInst)
		}
	}

	fetcher := apt.NewAcquire(j.cache, j.cfg.ArchiveDir, nil)
	if err := fetcher.GetArchives(); err != nil {
		j.log.WithError(err).Debug("downloaded filter: staging failed")
		return nil
	}

	local := make(map[apt.VerID]bool)
	for _, item := range fetcher.Items() {
		if item.Local {
			local[item.Ver] = true
		}
	}

	out := pkgs[:0:0]
	for _, info := range pkgs {
		if local[info.Ver] {
			out = append(out, info)
		}
	}

	return out
}
