//go:build !integration

package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imz/PackageKit/pkg/pk"
)

func TestSplitSection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		section   string
		component string
		name      string
	}{
		{"Editors", "main", "Editors"},
		{"contrib/games", "contrib", "games"},
		{"non-free/misc/extra", "non-free/misc", "extra"},
		{"", "main", ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.section, func(t *testing.T) {
			t.Parallel()

			component, name := splitSection(tc.section)
			assert.Equal(t, tc.component, component)
			assert.Equal(t, tc.name, name)
		})
	}
}

const filterFixture = `
packages:
  - name: editor
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: noarch
        section: editors
        files: [{url: "http://mirror.test/editor.rpm"}]
  - name: editor-devel
    versions:
      - version: "1.0"
        arch: noarch
        section: devel
        files: [{url: "http://mirror.test/editor-devel.rpm"}]
  - name: window-switcher
    versions:
      - version: "1.0"
        arch: noarch
        section: x11
        files: [{url: "http://mirror.test/window-switcher.rpm"}]
  - name: blob-driver
    versions:
      - version: "1.0"
        arch: noarch
        section: non-free/drivers
        files: [{url: "http://mirror.test/blob-driver.rpm"}]
`

func TestMatchPackageFilters(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, filterFixture, &pk.Job{Role: pk.RoleGetPackages})

	editor := j.findVer(mustPkg(t, j, "editor"))
	devel := j.findVer(mustPkg(t, j, "editor-devel"))
	gui := j.findVer(mustPkg(t, j, "window-switcher"))
	nonfree := j.findVer(mustPkg(t, j, "blob-driver"))

	assert.True(t, j.matchPackage(editor, pk.FilterInstalled))
	assert.False(t, j.matchPackage(editor, pk.FilterNotInstalled))
	assert.False(t, j.matchPackage(devel, pk.FilterInstalled))

	assert.True(t, j.matchPackage(devel, pk.FilterDevelopment))
	assert.False(t, j.matchPackage(editor, pk.FilterDevelopment))
	assert.True(t, j.matchPackage(editor, pk.FilterNotDevelopment))

	assert.True(t, j.matchPackage(gui, pk.FilterGui))
	assert.False(t, j.matchPackage(editor, pk.FilterGui))

	assert.True(t, j.matchPackage(editor, pk.FilterFree))
	assert.False(t, j.matchPackage(nonfree, pk.FilterFree))
	assert.True(t, j.matchPackage(nonfree, pk.FilterNotFree))

	// Combined filters must all hold.
	assert.True(t, j.matchPackage(editor, pk.FilterInstalled|pk.FilterFree))
	assert.False(t, j.matchPackage(editor, pk.FilterInstalled|pk.FilterDevelopment))
}

func TestDevelSuffixMatching(t *testing.T) {
	t.Parallel()

	const fixture = `
packages:
  - name: tracer-debuginfo
    versions:
      - version: "1.0"
        arch: noarch
        section: misc
        files: [{url: "http://mirror.test/tracer-debuginfo.rpm"}]
`

	j, _ := newTestJob(t, fixture, &pk.Job{Role: pk.RoleGetPackages})
	ver := j.findVer(mustPkg(t, j, "tracer-debuginfo"))

	assert.True(t, j.matchPackage(ver, pk.FilterDevelopment),
		"debuginfo packages count as development even outside devel sections")
}

func TestFilterPackagesPreservesOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, filterFixture, &pk.Job{Role: pk.RoleGetPackages})

	all := j.getPackages()
	free := j.filterPackages(all, pk.FilterFree)

	require.NotEmpty(t, free)
	assert.Less(t, len(free), len(all))

	// Order of the survivors matches the input.
	idx := 0
	for _, entry := range all {
		if idx < len(free) && free[idx].Ver == entry.Ver {
			idx++
		}
	}
	assert.Equal(t, len(free), idx)
}

func TestFilterDownloaded(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleGetPackages})

	gedit := mustPkg(t, j, "gedit")
	cand := j.cache.CandidateVer(gedit)

	// No archives on disk: nothing passes.
	assert.Empty(t, j.filterPackages([]PkgInfo{{Ver: cand}}, pk.FilterDownloaded))

	// A fully downloaded archive of the right size passes.
	archive := filepath.Join(j.cfg.ArchiveDir, "gedit_45.2-alt1_x86%5f64.rpm")
	require.NoError(t, os.WriteFile(archive, make([]byte, 2048), 0o644))

	got := j.filterPackages([]PkgInfo{{Ver: cand}}, pk.FilterDownloaded)
	require.Len(t, got, 1)
	assert.Equal(t, cand, got[0].Ver)

	// The dry run must not leak marks into the live state.
	assert.Zero(t, j.cache.InstCount())
}
