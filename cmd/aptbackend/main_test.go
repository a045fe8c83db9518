//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imz/PackageKit/pkg/pk"
)

func TestBuildJob(t *testing.T) {
	t.Parallel()

	opts := &options{
		filters:    []string{"installed", "~devel"},
		simulate:   true,
		autoRemove: true,
		recursive:  true,
		offline:    true,
	}

	job := buildJob(opts, pk.RoleInstallPackages, []string{"bash;5.2;x86_64;local"}, true)

	assert.Equal(t, pk.RoleInstallPackages, job.Role)
	assert.True(t, job.Filters.Has(pk.FilterInstalled))
	assert.True(t, job.Filters.Has(pk.FilterNotDevelopment))
	assert.True(t, job.Simulate())
	assert.False(t, job.OnlyDownload())
	assert.True(t, job.AutoRemove)
	assert.True(t, job.Recursive)
	assert.False(t, job.Online)
	assert.Equal(t, []string{"bash;5.2;x86_64;local"}, job.PackageIDs)
	assert.Empty(t, job.Values)
}

func TestBuildJobValuesChannel(t *testing.T) {
	t.Parallel()

	job := buildJob(&options{}, pk.RoleSearchName, []string{"editor"}, false)

	assert.Equal(t, []string{"editor"}, job.Values)
	assert.Empty(t, job.PackageIDs)
	assert.True(t, job.Online)
}

func TestRootCmdHasAllRoles(t *testing.T) {
	t.Parallel()

	root := rootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{
		"resolve", "search", "search-details", "search-group",
		"get-packages", "get-details", "get-updates", "get-update-detail",
		"get-depends", "get-requires", "what-provides",
		"install", "remove", "update", "refresh", "repair",
	} {
		require.True(t, names[want], "subcommand %s registered", want)
	}
}
