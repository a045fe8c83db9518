//go:build !integration

package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const garbageFixture = `
packages:
  - name: app
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["libapp"]
  - name: libapp
    auto: true
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
  - name: leftover
    auto: true
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
`

func TestGarbageFindsOrphans(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, garbageFixture)

	garbage := cache.Garbage()
	assert.True(t, garbage.Get("leftover"))
	assert.False(t, garbage.Get("libapp"), "still needed by app")
	assert.False(t, garbage.Get("app"), "manually installed")
}

// Removing the last manual dependent turns its auto dependencies into
// garbage; diffing before and after yields the autoremove set.
func TestGarbageAfterRemoval(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, garbageFixture)

	before := cache.Garbage()

	app := mustPkg(t, cache, "app")
	cache.MarkDelete(app)

	after := cache.Garbage()
	assert.True(t, after.Get("libapp"))

	newlyOrphaned := make([]string, 0)
	for _, name := range after.ToSlice() {
		if !before.Get(name) {
			newlyOrphaned = append(newlyOrphaned, name)
		}
	}
	assert.Equal(t, []string{"libapp"}, newlyOrphaned)
}

func TestGarbageFollowsProviders(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: app
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["mail-agent"]
  - name: postfix
    auto: true
    installed: "2.0"
    versions:
      - version: "2.0"
        arch: x86_64
        provides: ["mail-agent"]
`)

	garbage := cache.Garbage()
	assert.False(t, garbage.Get("postfix"), "kept alive through its provides")
}

func TestGarbageKeepsEssentialClosure(t *testing.T) {
	t.Parallel()
	cache := mustSnapshot(t, `
packages:
  - name: basesystem
    essential: true
    auto: true
    installed: "1.0"
    versions:
      - version: "1.0"
        arch: x86_64
        depends: ["glibc"]
  - name: glibc
    auto: true
    installed: "2.0"
    versions:
      - version: "2.0"
        arch: x86_64
`)

	garbage := cache.Garbage()
	assert.Empty(t, garbage.ToSlice())
}
