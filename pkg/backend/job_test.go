//go:build !integration

package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imz/PackageKit/pkg/pk"
)

func TestInitTakesAndReleasesLock(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleInstallPackages})

	require.True(t, j.Init(context.Background()))
	require.NotNil(t, j.lock)

	// A second job over the same archive dir cannot start while the
	// first holds the lock.
	other, emitter := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleInstallPackages})
	other.cfg.ArchiveDir = j.cfg.ArchiveDir

	assert.False(t, other.Init(context.Background()))

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Equal(t, pk.ErrorCannotGetLock, last.Code)

	j.Done()
	assert.Nil(t, j.lock)

	// Released, the next job proceeds.
	require.True(t, other.Init(context.Background()))
	other.Done()
}

func TestRepairSystemTakesTheLock(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleRepairSystem})

	require.True(t, j.Init(context.Background()))
	require.NotNil(t, j.lock, "repair commits cache mutations and must hold the lock")
	defer j.Done()

	// While held, another mutating job over the same archive dir is
	// refused.
	other, emitter := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleRepairSystem})
	other.cfg.ArchiveDir = j.cfg.ArchiveDir

	assert.False(t, other.Init(context.Background()))

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Equal(t, pk.ErrorCannotGetLock, last.Code)
}

func TestQueryRolesSkipTheLock(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleSearchName})

	require.True(t, j.Init(context.Background()))
	assert.Nil(t, j.lock)
	j.Done()
}

func TestSimulationSkipsTheLock(t *testing.T) {
	t.Parallel()

	j, _ := newTestJob(t, backendFixture, &pk.Job{
		Role:  pk.RoleInstallPackages,
		Flags: pk.TransactionFlagSimulate,
	})

	require.True(t, j.Init(context.Background()))
	assert.Nil(t, j.lock)
	j.Done()
}

func TestCheckDepsRejectsDirtyCache(t *testing.T) {
	t.Parallel()

	j, emitter := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleSearchName})

	gedit := mustPkg(t, j, "gedit")
	j.cache.MarkInstall(gedit, true, false)

	assert.False(t, j.checkDeps(context.Background(), false))

	last, found := emitter.LastError()
	require.True(t, found)
	assert.Equal(t, pk.ErrorInternalError, last.Code)
}

func TestRefreshCacheRole(t *testing.T) {
	t.Parallel()

	j, emitter := newTestJob(t, backendFixture, &pk.Job{Role: pk.RoleRefreshCache})

	require.True(t, j.Run(context.Background()))
	assert.Contains(t, emitter.Statuses, pk.StatusRefreshCache)
	assert.Equal(t, pk.StatusFinished, emitter.Statuses[len(emitter.Statuses)-1])
}
