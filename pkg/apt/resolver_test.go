//go:build !integration

package apt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRemovesConflictingPackage(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: new-mta
    versions:
      - version: "2.0"
        arch: x86_64
        conflicts: ["old-mta"]
        files: [{url: "http://example.test/new.rpm"}]
  - name: old-mta
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
`)

	newMTA := mustPkg(t, cache, "new-mta")
	oldMTA := mustPkg(t, cache, "old-mta")

	resolver := NewResolver(cache)
	cache.MarkInstall(newMTA, true, true)
	resolver.Protect(newMTA)

	require.NoError(t, resolver.Resolve(context.Background()))
	assert.Equal(t, ModeInstall, cache.State(newMTA).Mode)
	assert.Equal(t, ModeDelete, cache.State(oldMTA).Mode)
	assert.Zero(t, cache.BrokenCount())
}

func TestResolveInstallsMissingDependency(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: tool
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["libtool-runtime (>= 1.0)"]
        files: [{url: "http://example.test/tool.rpm"}]
  - name: libtool-runtime
    versions:
      - version: "1.2"
        arch: x86_64
        files: [{url: "http://example.test/lib.rpm"}]
`)

	tool := mustPkg(t, cache, "tool")
	lib := mustPkg(t, cache, "libtool-runtime")

	resolver := NewResolver(cache)
	cache.MarkInstall(tool, true, false)
	resolver.Protect(tool)

	require.NoError(t, resolver.Resolve(context.Background()))
	assert.Equal(t, ModeInstall, cache.State(lib).Mode)
	assert.True(t, cache.State(lib).Auto)
	assert.Zero(t, cache.BrokenCount())
}

func TestResolveRevertsUnprotectedUnsatisfiable(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: wish
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["nonexistent-lib"]
        files: [{url: "http://example.test/wish.rpm"}]
`)

	wish := mustPkg(t, cache, "wish")

	cache.MarkInstall(wish, true, false)
	resolver := NewResolver(cache)

	require.NoError(t, resolver.Resolve(context.Background()))
	assert.Equal(t, ModeKeep, cache.State(wish).Mode)
	assert.Zero(t, cache.BrokenCount())
}

func TestResolveFailsOnProtectedUnsatisfiable(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: wish
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["nonexistent-lib"]
        files: [{url: "http://example.test/wish.rpm"}]
`)

	wish := mustPkg(t, cache, "wish")

	cache.MarkInstall(wish, true, false)
	resolver := NewResolver(cache)
	resolver.Protect(wish)

	err := resolver.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrResolveFailed)
	assert.NotZero(t, cache.BrokenCount())
}

func TestResolveHonorsCancellation(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, orGroupFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewResolver(cache).Resolve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDistUpgrade(t *testing.T) {
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
  - name: pinned
    hold: true
    installed: "1.0"
    versions:
      - version: "2.0"
        arch: x86_64
        files: [{url: "http://example.test/pinned2.rpm"}]
      - version: "1.0"
        arch: x86_64
`)

	require.NoError(t, cache.DistUpgrade(context.Background()))

	editor := mustPkg(t, cache, "editor")
	pinned := mustPkg(t, cache, "pinned")
	assert.True(t, cache.Upgrade(editor))
	assert.Equal(t, ModeKeep, cache.State(pinned).Mode, "held packages stay put")
}

func TestFixBroken(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: app
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["libapp (>= 1.0)"]
  - name: libapp
    versions:
      - version: "1.0"
        arch: x86_64
        files: [{url: "http://example.test/libapp.rpm"}]
`)

	app := mustPkg(t, cache, "app")
	lib := mustPkg(t, cache, "libapp")

	require.True(t, cache.NowBroken(app))
	require.NoError(t, cache.FixBroken(context.Background()))
	assert.Equal(t, ModeInstall, cache.State(lib).Mode)
	assert.Zero(t, cache.BrokenCount())
}
