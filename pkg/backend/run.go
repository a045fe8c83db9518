package backend

import (
	"context"

	"github.com/imz/PackageKit/pkg/pk"
)

// Run executes the job's role end to end. It returns false when the
// job failed; the failure itself has already been emitted as an error
// code.
func (j *AptJob) Run(ctx context.Context) bool {
	ok := j.dispatch(ctx)

	j.emitter.Percentage(100)
	j.emitter.Status(pk.StatusFinished)

	return ok
}

func (j *AptJob) dispatch(ctx context.Context) bool {
	switch j.job.Role {
	case pk.RoleResolve:
		j.emitter.Status(pk.StatusQuery)
		j.emitPackages(j.resolvePackageIDs(j.job.PackageIDs), j.job.Filters, pk.InfoUnknown)

	case pk.RoleSearchName:
		j.emitter.Status(pk.StatusQuery)
		j.emitPackages(j.searchPackageName(ctx, j.job.Values), j.job.Filters, pk.InfoUnknown)

	case pk.RoleSearchDetails:
		j.emitter.Status(pk.StatusQuery)
		j.emitPackages(j.searchDetails(ctx, j.job.Values), j.job.Filters, pk.InfoUnknown)

	case pk.RoleSearchGroup:
		j.emitter.Status(pk.StatusQuery)

		pkgs, ok := j.getPackagesFromGroup(j.job.Values)
		if !ok {
			return false
		}

		j.emitPackages(pkgs, j.job.Filters, pk.InfoUnknown)

	case pk.RoleGetPackages:
		j.emitter.Status(pk.StatusQuery)
		j.emitPackages(j.getPackages(), j.job.Filters, pk.InfoUnknown)

	case pk.RoleGetDetails:
		j.emitDetails(j.resolvePackageIDs(j.job.PackageIDs))

	case pk.RoleGetUpdates:
		j.emitter.Status(pk.StatusQuery)
		return j.getUpdates(ctx)

	case pk.RoleGetUpdateDetail:
		j.emitter.Status(pk.StatusQuery)
		j.emitUpdateDetails(ctx, j.resolvePackageIDs(j.job.PackageIDs))

	case pk.RoleGetDepends:
		j.emitter.Status(pk.StatusQuery)

		deps := j.getDepends(j.resolvePackageIDs(j.job.PackageIDs), j.job.Recursive)
		j.emitPackages(deps, j.job.Filters, pk.InfoUnknown)

	case pk.RoleGetRequires:
		j.emitter.Status(pk.StatusQuery)

		reqs := j.getRequires(j.resolvePackageIDs(j.job.PackageIDs), j.job.Recursive)
		j.emitPackages(reqs, j.job.Filters, pk.InfoUnknown)

	case pk.RoleWhatProvides:
		j.emitter.Status(pk.StatusQuery)

		pkgs, ok := j.whatProvides(j.job.Values)
		if !ok {
			return false
		}

		j.emitPackages(pkgs, j.job.Filters, pk.InfoUnknown)

	case pk.RoleInstallPackages:
		return j.runTransaction(ctx, j.resolvePackageIDs(j.job.PackageIDs), nil, nil)

	case pk.RoleRemovePackages:
		return j.runTransaction(ctx, nil, j.resolvePackageIDs(j.job.PackageIDs), nil)

	case pk.RoleUpdatePackages:
		return j.runTransaction(ctx, nil, nil, j.resolvePackageIDs(j.job.PackageIDs))

	case pk.RoleRepairSystem:
		return j.runTransaction(ctx, nil, nil, nil)

	case pk.RoleRefreshCache:
		return j.refreshCache(ctx)

	default:
		j.emitter.ErrorCode(pk.ErrorInternalError, "unsupported role "+j.job.Role.String())
		return false
	}

	return true
}
