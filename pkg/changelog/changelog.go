// Package changelog fetches and parses package changelogs into the
// update-detail fields the daemon expects.
package changelog

import (
	"bufio"
	"regexp"
	"strings"
	"time"

	"github.com/imz/PackageKit/pkg/apt"
)

// Changelog is the parsed result for one package update.
type Changelog struct {
	// Text is the raw changelog, reflowed for markdown renderers.
	Text string
	// UpdateText holds only the entries newer than the installed
	// version, with "== version ==" markers between releases.
	UpdateText string
	// Issued is the RFC 3339 date of the oldest entry shown, Updated
	// of the newest. Both are empty when no date line parsed.
	Issued  string
	Updated string
}

var (
	entryHeader = regexp.MustCompile(`(?i)^(?P<source>.+) \((?P<version>.*)\) (?P<dist>.+); urgency=(?P<urgency>.+)`)
	entryDate   = regexp.MustCompile(`(?i)^ -- (?P<maintainer>.+) (?P<mail><.+>)  (?P<date>.+)$`)
)

// Parse walks a changelog and collects the entries newer than
// currentVersion. Entries at or below the installed version are cut
// off, so clients never see history they already have.
func Parse(text, sourcePkg, currentVersion string) Changelog {
	var (
		out        strings.Builder
		updateText strings.Builder
		issued     string
		updated    string
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

scan:
	for scanner.Scan() {
		line := scanner.Text()

		// Double-space indents confuse markdown renderers.
		if strings.HasPrefix(line, "  ") {
			line = line[1:]
		}

		if line == "" {
			out.WriteString("\n")
			continue
		}

		switch {
		case strings.HasPrefix(line, sourcePkg):
			if m := entryHeader.FindStringSubmatch(line); m != nil {
				version := m[entryHeader.SubexpIndex("version")]

				// Stop before entries the installed version already covers.
				if currentVersion != "" && apt.CompareVersions(version, currentVersion) <= 0 {
					break scan
				}

				if updateText.Len() != 0 {
					updateText.WriteString("\n\n")
				}

				updateText.WriteString(" == " + version + " ==")
			}
		case strings.HasPrefix(line, " --"):
			if m := entryDate.FindStringSubmatch(line); m != nil {
				if ts, err := parseMaintainerDate(m[entryDate.SubexpIndex("date")]); err == nil {
					issued = ts.Format(time.RFC3339)
					if updated == "" {
						updated = issued
					}
				}
			}
		case strings.HasPrefix(line, " "):
			updateText.WriteString("\n" + line)
		}

		out.WriteString(line + "\n")
	}

	return Changelog{
		Text:       strings.TrimRight(out.String(), " \t\n"),
		UpdateText: updateText.String(),
		Issued:     issued,
		Updated:    updated,
	}
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

func parseMaintainerDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}
