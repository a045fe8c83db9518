//go:build !integration

package apt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoInstallCommitsMarks(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: editor
    installed: "1.0"
    versions:
      - version: "2.0"
        arch: x86_64
        files: [{url: "http://example.test/editor2.rpm"}]
      - version: "1.0"
        arch: x86_64
  - name: cruft
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
  - name: fresh
    versions:
      - version: "3.0"
        arch: x86_64
        files: [{url: "http://example.test/fresh.rpm"}]
`)

	editor := mustPkg(t, cache, "editor")
	cruft := mustPkg(t, cache, "cruft")
	fresh := mustPkg(t, cache, "fresh")

	cache.MarkInstall(editor, true, true)
	cache.MarkDelete(cruft)
	cache.MarkInstall(fresh, false, true)

	var order []string
	pm := NewPackageManager(cache)
	progress := func(name string, removing bool, percent uint) {
		order = append(order, name)
		assert.LessOrEqual(t, percent, uint(100))
	}

	require.NoError(t, pm.DoInstall(context.Background(), progress))

	// Removals run before installs.
	assert.Equal(t, []string{"cruft", "editor", "fresh"}, order)

	assert.False(t, cache.Pkg(cruft).Installed())
	assert.Equal(t, "2.0", cache.Ver(cache.Pkg(editor).CurrentVer()).Version)
	assert.True(t, cache.Pkg(fresh).Installed())
	assert.True(t, cache.Pkg(fresh).Auto, "dependency installs keep their auto flag")

	assert.Zero(t, cache.InstCount())
	assert.Zero(t, cache.DelCount())
}

func TestDoInstallRunsHook(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: tool
    versions:
      - version: "1.0"
        arch: x86_64
        files: [{url: "http://example.test/tool.rpm"}]
`)

	tool := mustPkg(t, cache, "tool")
	cache.MarkInstall(tool, true, true)

	pm := NewPackageManager(cache)
	pm.SetHook([]string{"true"})

	require.NoError(t, pm.DoInstall(context.Background(), nil))
	assert.True(t, cache.Pkg(tool).Installed())
}

func TestDoInstallHookFailureAborts(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: tool
    versions:
      - version: "1.0"
        arch: x86_64
        files: [{url: "http://example.test/tool.rpm"}]
`)

	tool := mustPkg(t, cache, "tool")
	cache.MarkInstall(tool, true, true)

	pm := NewPackageManager(cache)
	pm.SetHook([]string{"false"})

	assert.Error(t, pm.DoInstall(context.Background(), nil))
	assert.False(t, cache.Pkg(tool).Installed())
}

func TestDoInstallCancellation(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: tool
    versions:
      - version: "1.0"
        arch: x86_64
        files: [{url: "http://example.test/tool.rpm"}]
`)

	tool := mustPkg(t, cache, "tool")
	cache.MarkInstall(tool, true, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pm := NewPackageManager(cache)
	assert.ErrorIs(t, pm.DoInstall(ctx, nil), context.Canceled)
	assert.False(t, cache.Pkg(tool).Installed())
}
