package backend

import (
	"context"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/sys/unix"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
	"github.com/imz/PackageKit/pkg/stringset"
)

// isObsoleted reports whether some other package's candidate declares
// it obsoletes this package's installed version. Such removals are
// reported as obsoletions, the replacing package carries the payload.
func (j *AptJob) isObsoleted(pkg apt.PkgID) bool {
	p := j.cache.Pkg(pkg)
	cur := p.CurrentVer()
	if cur == apt.NoVer {
		return false
	}

	curVersion := j.cache.Ver(cur).Version

	for _, edge := range p.RevDepends() {
		owner := j.cache.Ver(edge.Ver).Pkg
		if owner == pkg {
			continue
		}

		decl := j.cache.Ver(edge.Ver)
		if decl.Depends[edge.Group].Type != apt.DepObsoletes {
			continue
		}

		cand := j.cache.CandidateVer(owner)
		if cand == apt.NoVer || cand != edge.Ver || !decl.Downloadable() {
			continue
		}

		matched := false
		for _, alt := range decl.Depends[edge.Group].Alternatives {
			if alt.Target == p.Name && apt.CheckDep(curVersion, alt.Op, alt.Version) {
				matched = true
				break
			}
		}

		if !matched {
			continue
		}

		if j.cache.PkgPriority(owner) >= j.cache.PkgPriority(pkg) {
			return true
		}
	}

	return false
}

// tryToInstall marks one resolved version for install and shields it
// from the problem resolver. preserveAuto keeps the package's existing
// auto flag (updates), fresh installs count as user-requested unless
// the package-id carried an auto tag.
func (j *AptJob) tryToInstall(info PkgInfo, fix *apt.Resolver, preserveAuto, autoInst bool) bool {
	pkg := j.cache.Ver(info.Ver).Pkg

	j.cache.SetCandidateVersion(info.Ver)
	if j.cache.CandidateVer(pkg) == apt.NoVer {
		j.emitter.ErrorCode(pk.ErrorDepResolutionFailed,
			gotext.Get("Package %s is virtual and has no installation candidate",
				j.cache.Pkg(pkg).Name))

		return false
	}

	fromUser := true
	switch {
	case info.Action == pk.ActionInstallManual:
		fromUser = true
	case info.Action == pk.ActionInstallAuto:
		fromUser = false
	case preserveAuto:
		fromUser = !j.cache.State(pkg).Auto
	}

	j.cache.MarkInstall(pkg, fromUser, autoInst)

	fix.Clear(pkg)
	fix.Protect(pkg)

	return true
}

// tryToRemove marks one package for removal and forces the resolver to
// keep it that way.
func (j *AptJob) tryToRemove(info PkgInfo, fix *apt.Resolver) {
	pkg := j.cache.Ver(info.Ver).Pkg

	fix.Clear(pkg)
	fix.Protect(pkg)
	fix.Remove(pkg)

	j.cache.MarkDelete(pkg)
}

// isRemovingEssentialPackages lists the essential packages a pending
// transaction would remove, directly or through a dependency, and
// refuses the transaction if any are found. Obsoleted packages are
// exempt, their replacement carries the essential bit onward.
func (j *AptJob) isRemovingEssentialPackages() bool {
	var list string

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		p := j.cache.Pkg(pkg)
		if !p.Essential && !p.Important {
			continue
		}

		if j.cache.Delete(pkg) {
			if !j.isObsoleted(pkg) {
				list += p.Name + " "
			}

			continue
		}

		cur := p.CurrentVer()
		if cur == apt.NoVer {
			continue
		}

		for _, g := range j.cache.Ver(cur).Depends {
			if g.Type != apt.DepDepends && g.Type != apt.DepPreDepends {
				continue
			}

			for _, alt := range g.Alternatives {
				target, ok := j.cache.FindPkg(alt.Target)
				if !ok || !j.cache.Delete(target) || j.isObsoleted(target) {
					continue
				}

				list += alt.Target + " (due to " + p.Name + ") "
			}
		}
	}

	if list == "" {
		return false
	}

	j.emitter.ErrorCode(pk.ErrorCannotRemoveSystemPackage,
		gotext.Get("WARNING: You are trying to remove the following essential packages: %s", list))

	return true
}

// runTransaction marks the requested changes, resolves the resulting
// dependency problems, folds in autoremoval, and hands the final set to
// installPackages. install and update differ only in auto-flag
// handling.
func (j *AptJob) runTransaction(ctx context.Context, install, remove, update []PkgInfo) bool {
	j.emitter.Status(pk.StatusRunning)

	// A RepairSystem job arrives here with broken packages on purpose;
	// repair them before marking anything new.
	if j.cache.BrokenCount() != 0 {
		if err := j.cache.FixBroken(ctx); err != nil {
			j.showBroken(false, pk.ErrorDepResolutionFailed)
			return false
		}
	}

	var initialGarbage stringset.StringSet
	if j.job.AutoRemove {
		initialGarbage = j.cache.Garbage()
	}

	fix := apt.NewResolver(j.cache)

	groups := []struct {
		pkgs         []PkgInfo
		preserveAuto bool
	}{
		{install, false},
		{update, true},
	}

	for _, grp := range groups {
		// Two passes: the first pins explicitly requested versions so
		// they win or-group selection, the second expands dependencies.
		for _, autoInst := range []bool{false, true} {
			for _, entry := range grp.pkgs {
				if j.cancelled(ctx) {
					j.emitter.ErrorCode(pk.ErrorTransactionCancelled, ctx.Err().Error())
					return false
				}

				if !j.tryToInstall(entry, fix, grp.preserveAuto, autoInst) {
					return false
				}
			}
		}
	}

	j.markAutoInstalled(install)

	for _, entry := range remove {
		j.tryToRemove(entry, fix)
	}

	if err := fix.Resolve(ctx); err != nil {
		if j.cache.BrokenCount() != 0 {
			j.showBroken(false, pk.ErrorDepResolutionFailed)
			return false
		}

		// The resolver gave up but left a consistent state; carry on.
		j.log.WithError(err).Debug("resolver unsettled but nothing broken")
	}

	if j.job.AutoRemove {
		for name := range j.cache.Garbage() {
			if initialGarbage.Get(name) {
				continue
			}

			pkg, ok := j.cache.FindPkg(name)
			if !ok || !j.cache.Pkg(pkg).Installed() || j.cache.Delete(pkg) {
				continue
			}

			j.tryToRemove(PkgInfo{Ver: j.cache.Pkg(pkg).CurrentVer()}, fix)
		}
	}

	sentinelBefore := sentinelMTime(j.cfg.RebootSentinel)

	if !j.installPackages(ctx) {
		return false
	}

	if !j.job.Simulate() && sentinelMTime(j.cfg.RebootSentinel).After(sentinelBefore) {
		switch {
		case len(j.restartPkgs) > 0:
			j.emitRequireRestart(j.restartPkgs)
		case len(j.pkgs) > 0:
			j.emitRequireRestart(j.pkgs)
		default:
			j.emitter.RequireRestart(pk.RestartSystem, "apt-backend;;;")
		}
	}

	return true
}

func sentinelMTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}

	return fi.ModTime()
}

// installPackages fetches the archives for the pending operations and
// commits them. Simulation stops after reporting the would-be changes.
func (j *AptJob) installPackages(ctx context.Context) bool {
	if j.isRemovingEssentialPackages() {
		return false
	}

	if j.cache.BrokenCount() != 0 {
		j.emitter.ErrorCode(pk.ErrorInternalError,
			gotext.Get("InstallPackages was called with broken packages"))

		return false
	}

	if j.cache.InstCount() == 0 && j.cache.DelCount() == 0 {
		return true
	}

	fetcher := apt.NewAcquire(j.cache, j.cfg.ArchiveDir, newAcquireProgress(ctx, j))
	if err := fetcher.GetArchives(); err != nil {
		j.emitter.ErrorCode(pk.ErrorPackageDownloadFailed, err.Error())
		return false
	}

	j.emitter.DownloadSizeRemaining(fetcher.FetchNeeded())

	if fetcher.FetchNeeded() > 0 && !j.job.Simulate() && !j.job.Online {
		j.emitter.ErrorCode(pk.ErrorNoNetwork,
			gotext.Get("Cannot download packages whilst offline"))

		return false
	}

	var st unix.Statfs_t
	if err := unix.Statfs(j.cfg.ArchiveDir, &st); err == nil {
		free := uint64(st.Bavail) * uint64(st.Bsize)
		if free < fetcher.FetchNeeded() {
			j.emitter.ErrorCode(pk.ErrorNoSpaceOnDevice,
				gotext.Get("You do not have enough free space in %s", j.cfg.ArchiveDir))

			return false
		}
	}

	if j.job.Simulate() {
		j.checkChangedPackages(true)
		return true
	}

	j.pkgs = j.checkChangedPackages(false)

	if err := fetcher.Run(ctx); err != nil {
		if j.cancelled(ctx) {
			return true
		}

		j.emitter.ErrorCode(pk.ErrorPackageDownloadFailed, err.Error())

		return false
	}

	if j.job.OnlyDownload() {
		return true
	}

	if j.cancelled(ctx) {
		return true
	}

	j.emitter.AllowCancel(false)
	j.emitter.Status(pk.StatusInstall)

	pm := apt.NewPackageManager(j.cache)
	pm.SetHook(j.cfg.CommitHook)

	err := pm.DoInstall(ctx, func(name string, removing bool, percent uint) {
		status := pk.StatusInstall
		if removing {
			status = pk.StatusRemove
		}

		if info, ok := j.findTransactionPackage(name); ok {
			j.emitter.ItemProgress(j.buildPackageID(info.Ver), status, percent)
		}

		j.emitter.Percentage(percent)
	})
	if err != nil {
		j.emitter.ErrorCode(pk.ErrorInternalError, err.Error())
		return false
	}

	return true
}
