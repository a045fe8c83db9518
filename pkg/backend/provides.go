package backend

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/gst"
	"github.com/imz/PackageKit/pkg/lookup/mime"
	"github.com/imz/PackageKit/pkg/pk"
)

var sonameRE = regexp.MustCompile(`(?i)^(lib.*)\.so\.[0-9]*`)

// libraryPackageName derives the conventional shared-library package
// name from a soname query: "libfoo.so.2" names the package "libfoo2",
// with a dash inserted when the base name already ends in a digit.
func libraryPackageName(query string) (string, bool) {
	m := sonameRE.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}

	name := strings.ToLower(m[1])

	i := strings.Index(strings.ToLower(query), ".so.")
	suffix := query[i+len(".so."):]
	if suffix != "" {
		if r := rune(name[len(name)-1]); unicode.IsDigit(r) {
			name += "-"
		}

		name += suffix
	}

	return name, true
}

// providesLibrary resolves soname queries to the packages shipping the
// library.
func (j *AptJob) providesLibrary(queries []string) []PkgInfo {
	var out []PkgInfo

	for _, query := range queries {
		name, ok := libraryPackageName(query)
		if !ok {
			continue
		}

		pkg, found := j.cache.FindPkg(name)
		if !found || j.cache.Pkg(pkg).Virtual() {
			continue
		}

		if v := j.findVer(pkg); v != apt.NoVer {
			out = append(out, PkgInfo{Ver: v})
		}
	}

	return out
}

// providesCodec matches gstreamer capability queries against package
// provides. Debug packages are skipped, their provides shadow the real
// plugin packages.
func (j *AptJob) providesCodec(queries []string) []PkgInfo {
	matcher := gst.NewMatcher(queries)
	if !matcher.Valid() {
		return nil
	}

	var out []PkgInfo

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)
		p := j.cache.Pkg(pkg)
		if p.Virtual() ||
			strings.HasSuffix(p.Name, "-debuginfo") ||
			strings.HasSuffix(p.Name, "-dbgsym") {
			continue
		}

		v := j.findVer(pkg)
		if v == apt.NoVer {
			continue
		}

		for _, provide := range j.cache.Ver(v).Provides {
			if matcher.Matches(provide) {
				out = append(out, PkgInfo{Ver: v})
				break
			}
		}
	}

	return out
}

// providesMime resolves mimetype handlers through the distribution's
// application metadata pool.
func (j *AptJob) providesMime(queries []string) ([]PkgInfo, bool) {
	pool, err := mime.Load(j.cfg.MetadataPool)
	if err != nil {
		j.emitter.ErrorCode(pk.ErrorMetadataLoadFailed, err.Error())
		return nil, false
	}

	var out []PkgInfo

	for _, query := range queries {
		for _, name := range pool.Packages(query) {
			pkg, ok := j.cache.FindPkg(name)
			if !ok || j.cache.Pkg(pkg).Virtual() {
				continue
			}

			if v := j.findVer(pkg); v != apt.NoVer {
				out = append(out, PkgInfo{Ver: v})
			}
		}
	}

	return out, true
}

// whatProvides dispatches a provides query on its syntax: soname
// queries, gstreamer capability queries, and mimetypes all arrive
// through the same daemon call.
func (j *AptJob) whatProvides(queries []string) ([]PkgInfo, bool) {
	if len(queries) == 0 {
		return nil, true
	}

	if sonameRE.MatchString(queries[0]) {
		return j.providesLibrary(queries), true
	}

	if _, ok := gst.ParseQuery(queries[0]); ok {
		return j.providesCodec(queries), true
	}

	if strings.ContainsRune(queries[0], '/') {
		return j.providesMime(queries)
	}

	return nil, true
}
