//go:build !integration

package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDepSpec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		spec    string
		want    Dependency
		wantErr bool
	}{
		{name: "bare name", spec: "libfoo", want: Dependency{Target: "libfoo"}},
		{
			name: "versioned",
			spec: "libfoo (>= 1.2-alt1)",
			want: Dependency{Target: "libfoo", Op: ">=", Version: "1.2-alt1"},
		},
		{
			name: "strict less",
			spec: "bar (<< 2.0)",
			want: Dependency{Target: "bar", Op: "<<", Version: "2.0"},
		},
		{name: "empty", spec: "", wantErr: true},
		{name: "unclosed constraint", spec: "foo (>= 1.0", wantErr: true},
		{name: "bad operator", spec: "foo (~> 1.0)", wantErr: true},
		{name: "missing version", spec: "foo (>=)", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDepSpec(tc.spec)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDepGroup(t *testing.T) {
	t.Parallel()

	g, err := ParseDepGroup(DepDepends, "mta | postfix (>= 2.0) | sendmail")
	require.NoError(t, err)
	assert.Equal(t, DepDepends, g.Type)
	require.Len(t, g.Alternatives, 3)
	assert.Equal(t, "postfix", g.Alternatives[1].Target)
	assert.Equal(t, ">=", g.Alternatives[1].Op)

	_, err = ParseDepGroup(DepConflicts, "a | b")
	assert.Error(t, err, "conflicts may not carry alternatives")
}

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	cache, err := ParseSnapshot([]byte(`
packages:
  - name: shell
    installed: "1.0-alt1"
    versions:
      - version: "1.0-alt1"
        arch: x86_64
        section: base/shells
        depends: ["libreadline (>= 5.0)"]
        files:
          - origin: ALT Linux
            suite: Sisyphus
            component: classic
            url: http://example.test/shell-1.0-alt1.x86_64.rpm
  - name: libreadline
    auto: true
    installed: "5.2-alt1"
    versions:
      - version: "5.2-alt1"
        arch: x86_64
        provides: ["readline-api"]
`))
	require.NoError(t, err)

	shell, ok := cache.FindPkg("shell")
	require.True(t, ok)
	assert.True(t, cache.Pkg(shell).Installed())

	ver := cache.Pkg(shell).CurrentVer()
	require.NotEqual(t, NoVer, ver)
	assert.True(t, cache.Ver(ver).Downloadable())

	rl, ok := cache.FindPkg("libreadline")
	require.True(t, ok)
	assert.True(t, cache.Pkg(rl).Auto)
	assert.False(t, cache.Ver(cache.Pkg(rl).CurrentVer()).Downloadable())

	api, ok := cache.FindPkg("readline-api")
	require.True(t, ok)
	assert.True(t, cache.Pkg(api).Virtual())
	assert.Len(t, cache.Pkg(api).ProvidedBy(), 1)

	assert.False(t, cache.NowBroken(shell))
}

func TestParseSnapshotRejectsUnlistedInstalled(t *testing.T) {
	t.Parallel()

	_, err := ParseSnapshot([]byte(`
packages:
  - name: ghost
    installed: "2.0"
    versions:
      - version: "1.0"
        arch: noarch
`))
	assert.Error(t, err)
}
