//go:build !integration

package backend

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
	"github.com/imz/PackageKit/pkg/pk/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

// newTestJob builds a job over a parsed fixture with a throwaway
// archive dir. Interactive stays set so the constructor leaves the
// process environment alone.
func newTestJob(t *testing.T, fixture string, job *pk.Job) (*AptJob, *mock.Emitter) {
	t.Helper()

	cache, err := apt.ParseSnapshot([]byte(fixture))
	require.NoError(t, err)

	job.Interactive = true

	cfg := DefaultConfig()
	cfg.ArchiveDir = t.TempDir()
	cfg.RebootSentinel = cfg.ArchiveDir + "/reboot-required"
	cfg.SnapshotPath = cfg.ArchiveDir + "/cache.yaml"
	cfg.LockRetries = 0

	emitter := &mock.Emitter{}

	return NewAptJob(cache, job, emitter, cfg, testLogger()), emitter
}

const backendFixture = `
packages:
  - name: gedit
    installed: "45.1-alt1"
    versions:
      - version: "45.2-alt1"
        arch: x86_64
        section: Editors
        size: 2048
        installed-size: 8192
        summary: GNOME text editor
        description: |
          A small and lightweight text editor.
          .
          Supports plugins.
        source: gedit
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            site: mirror.test
            url: http://mirror.test/pool/gedit-45.2.rpm
      - version: "45.1-alt1"
        arch: x86_64
        section: Editors
        size: 2000
        installed-size: 8000
        summary: GNOME text editor
        description: |
          A small and lightweight text editor.
          .
          Supports plugins.
        source: gedit
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            site: mirror.test
            url: http://mirror.test/pool/gedit-45.1.rpm
  - name: gedit-devel
    versions:
      - version: "45.2-alt1"
        arch: x86_64
        section: devel
        summary: development headers for gedit
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            url: http://mirror.test/pool/gedit-devel.rpm
  - name: postfix
    installed: "3.8-alt1"
    versions:
      - version: "3.8-alt1"
        arch: x86_64
        section: Networking/Mail
        summary: fast and secure mail transfer agent
        provides: [mail-agent]
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            url: http://mirror.test/pool/postfix.rpm
  - name: kernel-image
    hold: true
    installed: "6.1-alt1"
    versions:
      - version: "6.2-alt1"
        arch: x86_64
        section: System/Kernel
        summary: the kernel
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            url: http://mirror.test/pool/kernel-6.2.rpm
      - version: "6.1-alt1"
        arch: x86_64
        section: System/Kernel
        summary: the kernel
        files:
          - origin: ALT Linux Team
            suite: ALT Linux p11
            component: classic
            url: http://mirror.test/pool/kernel-6.1.rpm
`

func mustPkg(t *testing.T, j *AptJob, name string) apt.PkgID {
	t.Helper()

	id, ok := j.cache.FindPkg(name)
	require.True(t, ok, "package %s in fixture", name)

	return id
}
