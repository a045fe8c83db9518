package backend

import (
	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// findVer picks the version a bare package name refers to: the
// installed one, else the candidate, else the first listed.
func (j *AptJob) findVer(pkg apt.PkgID) apt.VerID {
	p := j.cache.Pkg(pkg)
	if cur := p.CurrentVer(); cur != apt.NoVer {
		return cur
	}

	if cand := j.cache.CandidateVer(pkg); cand != apt.NoVer {
		return cand
	}

	if vers := p.Versions(); len(vers) > 0 {
		return vers[0]
	}

	return apt.NoVer
}

// findCandidateVer is findVer without the installed-version preference,
// so bare names in a resolve also surface the repository version.
func (j *AptJob) findCandidateVer(pkg apt.PkgID) apt.VerID {
	return j.cache.CandidateVer(pkg)
}

// buildPackageID serializes a version handle into the daemon's
// composite key. The data field carries the origin repository id,
// prefixed with "installed:" when this exact version is installed.
func (j *AptJob) buildPackageID(ver apt.VerID) string {
	v := j.cache.Ver(ver)
	pkg := j.cache.Pkg(v.Pkg)

	origin := "local"
	if f := v.File(); f != nil {
		origin = pk.BuildOriginID(f.Origin, f.Suite, f.Component)
	}

	data := origin
	if j.cache.IsInstalled(ver) {
		data = pk.InstalledData(origin)
	}

	return pk.PackageID{
		Name:    pkg.Name,
		Version: v.Version,
		Arch:    v.Arch,
		Data:    data,
	}.String()
}

// resolvePkgID maps a parsed package-ID back onto a version handle,
// preferring an exact version-string match and carrying the transient
// install-intent tag along.
func (j *AptJob) resolvePkgID(id pk.PackageID) (PkgInfo, bool) {
	pkg, ok := j.cache.FindPkg(id.Name)
	if !ok || j.cache.Pkg(pkg).DependencyOnly() {
		return PkgInfo{}, false
	}

	action := pk.ActionNone
	switch id.Intent() {
	case pk.ActionInstallAuto:
		action = pk.ActionInstallAuto
	case pk.ActionInstallManual:
		action = pk.ActionInstallManual
	}

	if exact := j.cache.FindVerByString(pkg, id.Version); exact != apt.NoVer {
		return PkgInfo{Ver: exact, Action: action}, true
	}

	fallback := j.findVer(pkg)
	if fallback == apt.NoVer {
		return PkgInfo{}, false
	}

	return PkgInfo{Ver: fallback, Action: action}, true
}

// resolvePackageIDs resolves the job's package-id list. Strings that do
// not parse as package-IDs are treated as bare names, matching both the
// installed and the candidate version.
func (j *AptJob) resolvePackageIDs(ids []string) []PkgInfo {
	out := make([]PkgInfo, 0, len(ids))

	for _, id := range ids {
		parsed, err := pk.SplitPackageID(id)
		if err != nil {
			pkg, ok := j.cache.FindPkg(id)
			if !ok || j.cache.Pkg(pkg).DependencyOnly() {
				continue
			}

			if v := j.findVer(pkg); v != apt.NoVer {
				out = append(out, PkgInfo{Ver: v})
			}

			if cand := j.findCandidateVer(pkg); cand != apt.NoVer && cand != j.findVer(pkg) {
				out = append(out, PkgInfo{Ver: cand})
			}

			continue
		}

		if info, ok := j.resolvePkgID(parsed); ok {
			out = append(out, info)
		}
	}

	return out
}

// findTransactionPackage looks a changed package up by name, preferring
// the version recorded in the transaction set over a fresh lookup.
func (j *AptJob) findTransactionPackage(name string) (PkgInfo, bool) {
	for _, info := range j.pkgs {
		if j.cache.Pkg(j.cache.Ver(info.Ver).Pkg).Name == name {
			return info, true
		}
	}

	pkg, ok := j.cache.FindPkg(name)
	if !ok {
		return PkgInfo{}, false
	}

	if v := j.findVer(pkg); v != apt.NoVer {
		return PkgInfo{Ver: v}, true
	}

	return PkgInfo{}, false
}
