package backend

import (
	"context"
	"strings"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/changelog"
	"github.com/imz/PackageKit/pkg/group"
	"github.com/imz/PackageKit/pkg/pk"
)

// formatDescription reflows an index-style long description: leading
// indents are stripped, continuation lines are joined into paragraphs,
// and a lone "." marks a paragraph break.
func formatDescription(raw string) string {
	var (
		paras []string
		cur   []string
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "." {
			if len(cur) > 0 {
				paras = append(paras, strings.Join(cur, " "))
				cur = nil
			}

			continue
		}

		cur = append(cur, line)
	}

	if len(cur) > 0 {
		paras = append(paras, strings.Join(cur, " "))
	}

	return strings.Join(paras, "\n")
}

// emitDetails pushes a details record per resolved package.
func (j *AptJob) emitDetails(pkgs []PkgInfo) {
	j.emitter.Status(pk.StatusQuery)

	for _, entry := range j.sortUnique(pkgs) {
		j.emitPackageDetail(entry.Ver)
	}
}

func (j *AptJob) emitPackageDetail(ver apt.VerID) {
	v := j.cache.Ver(ver)

	// The index format carries no license field.
	size := v.Size
	if j.cache.IsInstalled(ver) {
		size = v.InstalledSize
	}

	homepage := ""
	if f := v.File(); f != nil {
		homepage = f.Site
	}

	j.emitter.Details(pk.Details{
		PackageID:   j.buildPackageID(ver),
		Summary:     v.Summary,
		License:     "unknown",
		Group:       group.FromSection(v.Section),
		Description: formatDescription(v.Description),
		URL:         homepage,
		Size:        size,
	})
}

// updateStateFromSuite maps an archive suite onto the daemon's update
// stability classes.
func updateStateFromSuite(suite string) pk.UpdateState {
	switch strings.ToLower(suite) {
	case "stable":
		return pk.UpdateStateStable
	case "testing":
		return pk.UpdateStateTesting
	case "unstable", "experimental":
		return pk.UpdateStateUnstable
	}

	return pk.UpdateStateUnknown
}

// emitUpdateDetails pushes an update-detail record per resolved update.
func (j *AptJob) emitUpdateDetails(ctx context.Context, pkgs []PkgInfo) {
	getter := &changelog.Getter{Template: j.cfg.ChangelogTemplate}

	for _, entry := range j.sortUnique(pkgs) {
		if j.cancelled(ctx) {
			return
		}

		j.emitUpdateDetail(ctx, getter, entry.Ver)
	}
}

func (j *AptJob) emitUpdateDetail(ctx context.Context, getter *changelog.Getter, ver apt.VerID) {
	v := j.cache.Ver(ver)
	p := j.cache.Pkg(v.Pkg)

	var updates []string
	currentVersion := ""
	if cur := p.CurrentVer(); cur != apt.NoVer {
		updates = append(updates, j.buildPackageID(cur))
		currentVersion = j.cache.Ver(cur).Version
	}

	var obsoletes []string
	for _, g := range v.Depends {
		if g.Type != apt.DepObsoletes {
			continue
		}

		for _, alt := range g.Alternatives {
			target, ok := j.cache.FindPkg(alt.Target)
			if !ok {
				continue
			}

			if obs := j.findVer(target); obs != apt.NoVer {
				obsoletes = append(obsoletes, j.buildPackageID(obs))
			}
		}
	}

	log := changelog.Changelog{Text: changelog.NotAvailable}
	if j.job.Online {
		j.emitter.Status(pk.StatusDownloadChangelog)

		text, err := getter.Get(ctx, v.SourcePkg, v.Version)
		if err != nil {
			j.log.WithError(err).Debug("changelog fetch failed")
		}

		log = changelog.Parse(text, v.SourcePkg, currentVersion)
	}

	if log.Issued == log.Updated {
		log.Updated = ""
	}

	state := pk.UpdateStateUnknown
	if f := v.File(); f != nil {
		state = updateStateFromSuite(f.Suite)
	}

	restart := pk.RestartNone
	if utilRestartRequired(p.Name) {
		restart = pk.RestartSystem
	}

	j.emitter.UpdateDetail(pk.UpdateDetail{
		PackageID:    j.buildPackageID(ver),
		Updates:      updates,
		Obsoletes:    obsoletes,
		BugzillaURLs: changelog.BugURLs(log.Text),
		CVEURLs:      changelog.CVEURLs(log.Text),
		Restart:      restart,
		UpdateText:   log.UpdateText,
		Changelog:    log.Text,
		State:        state,
		Issued:       log.Issued,
		Updated:      log.Updated,
	})
}
