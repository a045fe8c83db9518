package backend

import (
	"sort"
	"strings"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// sortUnique orders a result set by package name (then newest version
// first) and drops duplicate version handles.
func (j *AptJob) sortUnique(pkgs []PkgInfo) []PkgInfo {
	sort.SliceStable(pkgs, func(a, b int) bool {
		va, vb := j.cache.Ver(pkgs[a].Ver), j.cache.Ver(pkgs[b].Ver)
		na := j.cache.Pkg(va.Pkg).Name
		nb := j.cache.Pkg(vb.Pkg).Name
		if na != nb {
			return na < nb
		}

		return apt.CompareVersions(va.Version, vb.Version) > 0
	})

	out := pkgs[:0:0]
	seen := make(map[apt.VerID]bool, len(pkgs))

	for _, info := range pkgs {
		if seen[info.Ver] {
			continue
		}

		seen[info.Ver] = true
		out = append(out, info)
	}

	return out
}

// emitPackage pushes one package; InfoUnknown picks the default
// installed/available state.
func (j *AptJob) emitPackage(info pk.Info, ver apt.VerID) {
	if info == pk.InfoUnknown {
		if j.cache.IsInstalled(ver) {
			info = pk.InfoInstalled
		} else {
			info = pk.InfoAvailable
		}
	}

	j.emitter.Package(info, j.buildPackageID(ver), j.cache.Ver(ver).Summary)
}

// emitPackages sorts, filters, and pushes a result set. The newest
// filters operate per package: newest keeps only the first (highest)
// version of each name, not-newest drops it and keeps the rest.
func (j *AptJob) emitPackages(pkgs []PkgInfo, filters pk.Filter, info pk.Info) {
	pkgs = j.sortUnique(pkgs)
	pkgs = j.filterPackages(pkgs, filters)

	newestOnly := filters.Has(pk.FilterNewest)
	skipNewest := filters.Has(pk.FilterNotNewest)

	var lastPkg apt.PkgID = apt.NoPkg
	for _, entry := range pkgs {
		pkg := j.cache.Ver(entry.Ver).Pkg
		first := pkg != lastPkg
		lastPkg = pkg

		if newestOnly && !first {
			continue
		}

		if skipNewest && first {
			continue
		}

		j.emitPackage(info, entry.Ver)
	}
}

// restartNames lists the packages whose update requires a system
// restart before it takes full effect.
func utilRestartRequired(name string) bool {
	if strings.HasPrefix(name, "linux-image-") || strings.HasPrefix(name, "nvidia-") {
		return true
	}

	return name == "libc6" || name == "dbus" || name == "dbus-broker"
}

// checkChangedPackages walks the pending operations and classifies
// every change. With emitChanged the changes are also pushed to the
// daemon, grouped by kind. Restart-sensitive names are collected for
// the post-commit restart signal either way.
func (j *AptJob) checkChangedPackages(emitChanged bool) []PkgInfo {
	var (
		installing  []PkgInfo
		removing    []PkgInfo
		updating    []PkgInfo
		downgrading []PkgInfo
		obsoleting  []PkgInfo
	)

	j.restartPkgs = j.restartPkgs[:0]

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		p := j.cache.Pkg(pkg)

		var bucket *[]PkgInfo
		var ver apt.VerID

		switch {
		case j.cache.NewInstall(pkg):
			bucket, ver = &installing, j.cache.CandidateVer(pkg)
		case j.cache.Delete(pkg):
			ver = j.findVer(pkg)
			if j.isObsoleted(pkg) {
				bucket = &obsoleting
			} else {
				bucket = &removing
			}
		case j.cache.Upgrade(pkg):
			bucket, ver = &updating, j.cache.CandidateVer(pkg)
		case j.cache.Downgrade(pkg):
			bucket, ver = &downgrading, j.cache.CandidateVer(pkg)
		default:
			continue
		}

		if ver == apt.NoVer {
			continue
		}

		entry := PkgInfo{Ver: ver}
		*bucket = append(*bucket, entry)

		if utilRestartRequired(p.Name) {
			j.restartPkgs = append(j.restartPkgs, entry)
		}
	}

	if emitChanged {
		for _, entry := range obsoleting {
			j.emitPackage(pk.InfoObsoleting, entry.Ver)
		}

		for _, entry := range removing {
			j.emitPackage(pk.InfoRemoving, entry.Ver)
		}

		for _, entry := range downgrading {
			j.emitPackage(pk.InfoDowngrading, entry.Ver)
		}

		for _, entry := range installing {
			j.emitPackage(pk.InfoInstalling, entry.Ver)
		}

		for _, entry := range updating {
			j.emitPackage(pk.InfoUpdating, entry.Ver)
		}
	}

	changed := make([]PkgInfo, 0,
		len(installing)+len(removing)+len(updating)+len(downgrading)+len(obsoleting))
	changed = append(changed, obsoleting...)
	changed = append(changed, removing...)
	changed = append(changed, downgrading...)
	changed = append(changed, installing...)
	changed = append(changed, updating...)

	return changed
}

// emitRequireRestart signals a system restart for each collected
// restart-sensitive package.
func (j *AptJob) emitRequireRestart(pkgs []PkgInfo) {
	for _, entry := range pkgs {
		j.emitter.RequireRestart(pk.RestartSystem, j.buildPackageID(entry.Ver))
	}
}

// markAutoInstalled applies the install-intent tags carried by the
// resolved package-IDs onto the dependency state.
func (j *AptJob) markAutoInstalled(pkgs []PkgInfo) {
	for _, entry := range pkgs {
		switch entry.Action {
		case pk.ActionInstallAuto:
			j.cache.MarkAuto(j.cache.Ver(entry.Ver).Pkg, true)
		case pk.ActionInstallManual:
			j.cache.MarkAuto(j.cache.Ver(entry.Ver).Pkg, false)
		}
	}
}
