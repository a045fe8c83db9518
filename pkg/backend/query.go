package backend

import (
	"context"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/leonelquinteros/gotext"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/group"
	"github.com/imz/PackageKit/pkg/pk"
)

// getPackages collects every real package's representative version.
func (j *AptJob) getPackages() []PkgInfo {
	total := j.cache.PkgCount()
	out := make([]PkgInfo, 0, total)

	progress := newOpProgress(j.emitter)
	for i := 0; i < total; i++ {
		progress.Update(uint(i * 100 / total))

		pkg := apt.PkgID(i)
		if j.cache.Pkg(pkg).Virtual() {
			continue
		}

		if v := j.findVer(pkg); v != apt.NoVer {
			out = append(out, PkgInfo{Ver: v})
		}
	}

	progress.Done()

	return out
}

// nameMatchThreshold admits close misspellings next to substring hits.
const nameMatchThreshold = 0.92

func nameMatches(name, query string, sim *metrics.JaroWinkler) bool {
	if strings.Contains(strings.ToLower(name), query) {
		return true
	}

	return strutil.Similarity(strings.ToLower(name), query, sim) >= nameMatchThreshold
}

// searchPackageName matches package names case-insensitively. Virtual
// names expand to the packages providing them.
func (j *AptJob) searchPackageName(ctx context.Context, queries []string) []PkgInfo {
	var out []PkgInfo

	sim := metrics.NewJaroWinkler()

	for _, query := range queries {
		query = strings.ToLower(query)

		for i := 0; i < j.cache.PkgCount(); i++ {
			if j.cancelled(ctx) {
				return out
			}

			pkg := apt.PkgID(i)
			p := j.cache.Pkg(pkg)
			if !nameMatches(p.Name, query, sim) {
				continue
			}

			if p.Virtual() {
				for _, pv := range p.ProvidedBy() {
					owner := j.cache.Ver(pv).Pkg
					if v := j.findVer(owner); v != apt.NoVer {
						out = append(out, PkgInfo{Ver: v})
					}
				}

				continue
			}

			if v := j.findVer(pkg); v != apt.NoVer {
				out = append(out, PkgInfo{Ver: v})
			}
		}
	}

	return out
}

// searchDetails additionally matches summaries and long descriptions.
func (j *AptJob) searchDetails(ctx context.Context, queries []string) []PkgInfo {
	var out []PkgInfo

	sim := metrics.NewJaroWinkler()

	for _, query := range queries {
		query = strings.ToLower(query)

		for i := 0; i < j.cache.PkgCount(); i++ {
			if j.cancelled(ctx) {
				return out
			}

			pkg := apt.PkgID(i)
			p := j.cache.Pkg(pkg)

			if nameMatches(p.Name, query, sim) {
				if p.Virtual() {
					for _, pv := range p.ProvidedBy() {
						owner := j.cache.Ver(pv).Pkg
						if v := j.findVer(owner); v != apt.NoVer {
							out = append(out, PkgInfo{Ver: v})
						}
					}

					continue
				}

				if v := j.findVer(pkg); v != apt.NoVer {
					out = append(out, PkgInfo{Ver: v})
				}

				continue
			}

			if p.Virtual() {
				continue
			}

			v := j.findVer(pkg)
			if v == apt.NoVer {
				continue
			}

			rec := j.cache.Ver(v)
			if strings.Contains(strings.ToLower(rec.Summary), query) ||
				strings.Contains(strings.ToLower(rec.Description), query) {
				out = append(out, PkgInfo{Ver: v})
			}
		}
	}

	return out
}

// getPackagesFromGroup collects packages whose section maps onto one of
// the requested groups. Values carrying a "repo:" prefix select by
// repository origin instead.
func (j *AptJob) getPackagesFromGroup(values []string) ([]PkgInfo, bool) {
	wanted := make(map[pk.Group]bool, len(values))

	var out []PkgInfo

	for _, value := range values {
		if value == "" {
			j.emitter.ErrorCode(pk.ErrorGroupNotFound,
				gotext.Get("An empty group was received"))

			return nil, false
		}

		if repoID, ok := strings.CutPrefix(value, "repo:"); ok {
			out = append(out, j.getPackagesFromRepo(repoID)...)
			continue
		}

		if g, ok := pk.GroupFromString(value); ok {
			wanted[g] = true
		}
	}

	if len(wanted) == 0 {
		return out, true
	}

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		if j.cache.Pkg(pkg).Virtual() {
			continue
		}

		v := j.findVer(pkg)
		if v == apt.NoVer {
			continue
		}

		if wanted[group.FromSection(j.cache.Ver(v).Section)] {
			out = append(out, PkgInfo{Ver: v})
		}
	}

	return out, true
}

// getPackagesFromRepo collects installed packages that came from the
// given origin id.
func (j *AptJob) getPackagesFromRepo(repoID string) []PkgInfo {
	var out []PkgInfo

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		cur := j.cache.Pkg(pkg).CurrentVer()
		if cur == apt.NoVer {
			continue
		}

		f := j.cache.Ver(cur).File()
		if f == nil {
			continue
		}

		if pk.BuildOriginID(f.Origin, f.Suite, f.Component) == repoID {
			out = append(out, PkgInfo{Ver: cur})
		}
	}

	return out
}

// getUpdates computes a full distribution upgrade and classifies every
// resulting change for the daemon.
func (j *AptJob) getUpdates(ctx context.Context) bool {
	if err := j.cache.DistUpgrade(ctx); err != nil {
		j.showBroken(false, pk.ErrorDepResolutionFailed)
		return false
	}

	var (
		updates    []PkgInfo
		downgrades []PkgInfo
		installs   []PkgInfo
		removals   []PkgInfo
		obsoleted  []PkgInfo
		blocked    []PkgInfo
	)

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		p := j.cache.Pkg(pkg)

		if p.Hold {
			continue
		}

		switch {
		case j.cache.Upgrade(pkg) && !j.cache.NewInstall(pkg):
			updates = append(updates, PkgInfo{Ver: j.cache.CandidateVer(pkg)})
		case j.cache.Downgrade(pkg):
			downgrades = append(downgrades, PkgInfo{Ver: j.cache.CandidateVer(pkg)})
		case j.cache.Upgradable(pkg) && p.Installed() && !j.cache.Delete(pkg):
			blocked = append(blocked, PkgInfo{Ver: j.cache.CandidateVer(pkg)})
		case j.cache.NewInstall(pkg):
			installs = append(installs, PkgInfo{Ver: j.cache.CandidateVer(pkg)})
		case j.cache.Delete(pkg):
			v := j.findVer(pkg)
			if v == apt.NoVer {
				continue
			}

			if j.isObsoleted(pkg) {
				obsoleted = append(obsoleted, PkgInfo{Ver: v})
			} else {
				removals = append(removals, PkgInfo{Ver: v})
			}
		}
	}

	j.emitPackages(updates, j.job.Filters, pk.InfoNormal)
	j.emitPackages(downgrades, j.job.Filters, pk.InfoDowngrading)
	j.emitPackages(installs, j.job.Filters, pk.InfoInstalling)
	j.emitPackages(removals, j.job.Filters, pk.InfoRemoving)
	j.emitPackages(obsoleted, j.job.Filters, pk.InfoObsoleting)
	j.emitPackages(blocked, pk.FilterNone, pk.InfoBlocked)

	return true
}

func containsVer(list []PkgInfo, ver apt.VerID) bool {
	for _, entry := range list {
		if entry.Ver == ver {
			return true
		}
	}

	return false
}

// getDepends collects the Depends targets of each version, optionally
// walking the dependency closure.
func (j *AptJob) getDepends(pkgs []PkgInfo, recursive bool) []PkgInfo {
	var out []PkgInfo

	var walk func(ver apt.VerID)
	walk = func(ver apt.VerID) {
		for _, g := range j.cache.Ver(ver).Depends {
			if g.Type != apt.DepDepends && g.Type != apt.DepPreDepends {
				continue
			}

			for _, alt := range g.Alternatives {
				target, ok := j.cache.FindPkg(alt.Target)
				if !ok {
					continue
				}

				v := j.findVer(target)
				if v == apt.NoVer || containsVer(out, v) {
					continue
				}

				out = append(out, PkgInfo{Ver: v})
				if recursive {
					walk(v)
				}
			}
		}
	}

	for _, entry := range pkgs {
		walk(entry.Ver)
	}

	return out
}

// getRequires collects the packages whose dependencies include one of
// the given versions, optionally expanding the reverse closure.
func (j *AptJob) getRequires(pkgs []PkgInfo, recursive bool) []PkgInfo {
	var out []PkgInfo

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		if j.cache.Pkg(pkg).Virtual() {
			continue
		}

		v := j.findVer(pkg)
		if v == apt.NoVer || containsVer(pkgs, v) {
			continue
		}

		deps := j.getDepends([]PkgInfo{{Ver: v}}, false)
		for _, entry := range pkgs {
			if containsVer(deps, entry.Ver) {
				out = append(out, PkgInfo{Ver: v})
				break
			}
		}
	}

	if recursive && len(out) > 0 {
		seen := append(append([]PkgInfo(nil), pkgs...), out...)
		for _, extra := range j.getRequires(seen, false) {
			if !containsVer(out, extra.Ver) {
				out = append(out, extra)
			}
		}
	}

	return out
}
