//go:build !integration

package backend

import (
	"testing"

	"github.com/bradleyjkemp/cupaloy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imz/PackageKit/pkg/pk"
)

const brokenFixture = `
packages:
  - name: editor
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: noarch
        depends: ["libui (>= 2.0) | ui-compat", "spellcheck"]
        files: [{url: "http://mirror.test/editor.rpm"}]
  - name: libui
    installed: "1.5"
    versions:
      - version: "1.5"
        arch: noarch
        files: [{url: "http://mirror.test/libui.rpm"}]
`

func TestShowBrokenReport(t *testing.T) {
	j, emitter := newTestJob(t, brokenFixture, &pk.Job{Role: pk.RoleInstallPackages})

	j.showBroken(false, pk.ErrorDepResolutionFailed)

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Equal(t, pk.ErrorDepResolutionFailed, last.Code)

	cupaloy.SnapshotT(t, last.Message)
}

func TestShowBrokenReportsConflicts(t *testing.T) {
	t.Parallel()

	const fixture = `
packages:
  - name: editor
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: noarch
        conflicts: ["libold"]
        files: [{url: "http://mirror.test/editor.rpm"}]
  - name: libold
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: noarch
        files: [{url: "http://mirror.test/libold.rpm"}]
`

	j, emitter := newTestJob(t, fixture, &pk.Job{Role: pk.RoleRepairSystem})

	j.showBroken(true, pk.ErrorDepResolutionFailed)

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Contains(t, last.Message, "editor:")
	assert.Contains(t, last.Message, "Conflicts: libold but 1.0 is installed")
}

func TestShowBrokenNowMode(t *testing.T) {
	t.Parallel()

	j, emitter := newTestJob(t, brokenFixture, &pk.Job{Role: pk.RoleRepairSystem})

	j.showBroken(true, pk.ErrorUnfinishedTransaction)

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Equal(t, pk.ErrorUnfinishedTransaction, last.Code)
	assert.Contains(t, last.Message, "but 1.5 is installed")
	assert.Contains(t, last.Message, "spellcheck but it is a virtual package")
}
