// Package backend adapts daemon transaction requests onto the package
// cache: resolving identifiers, filtering and emitting query results,
// and orchestrating install/remove/update transactions.
package backend

import (
	"context"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// PkgInfo pairs a resolved version with the user-intent tag carried
// in-band by the package-ID that produced it.
type PkgInfo struct {
	Ver    apt.VerID
	Action pk.Action
}

// AptJob serves a single daemon job against one cache build. It is
// single-goroutine; cancellation is cooperative through the job
// context and checked at loop boundaries.
type AptJob struct {
	cache   *apt.Cache
	job     *pk.Job
	emitter pk.JobEmitter
	cfg     Config
	log     *logrus.Entry

	lock *apt.Lock

	// pkgs is the resolved transaction set; restartPkgs collects the
	// changed packages whose names predict a required restart.
	pkgs        []PkgInfo
	restartPkgs []PkgInfo
}

// NewAptJob binds a job request to a cache. Proxy and locale settings
// from the job are exported to the process environment so spawned
// helpers inherit them.
func NewAptJob(cache *apt.Cache, job *pk.Job, emitter pk.JobEmitter, cfg Config, log *logrus.Logger) *AptJob {
	if job.Locale != "" {
		os.Setenv("LANG", job.Locale)
		os.Setenv("LANGUAGE", job.Locale)
	}

	if job.ProxyHTTP != "" {
		os.Setenv("http_proxy", job.ProxyHTTP)
	}

	if job.ProxyFTP != "" {
		os.Setenv("ftp_proxy", job.ProxyFTP)
	}

	if !job.Interactive {
		// Ensure nothing spawned during commit asks questions.
		os.Setenv("APT_LISTCHANGES_FRONTEND", "none")
		os.Setenv("APT_LISTBUGS_FRONTEND", "none")
	}

	return &AptJob{
		cache:   cache,
		job:     job,
		emitter: emitter,
		cfg:     cfg,
		log:     log.WithField("role", job.Role),
	}
}

// Init prepares the cache for the job: mutating roles take the archive
// lock (retrying with one-second sleeps while another job holds it),
// then half-installed state is repaired. RepairSystem tolerates broken
// packages, everything else refuses to start on a broken cache.
func (j *AptJob) Init(ctx context.Context) bool {
	withLock := j.job.Role.NeedsLock() && !j.job.Simulate()

	if withLock {
		for retries := j.cfg.LockRetries; ; retries-- {
			lock, err := apt.AcquireLock(j.cfg.ArchiveDir)
			if err == nil {
				j.lock = lock
				break
			}

			if retries <= 0 {
				j.emitter.ErrorCode(pk.ErrorCannotGetLock, err.Error())
				return false
			}

			j.emitter.Status(pk.StatusWaitingForLock)

			select {
			case <-ctx.Done():
				j.emitter.ErrorCode(pk.ErrorTransactionCancelled, ctx.Err().Error())
				return false
			case <-time.After(time.Second):
			}
		}
	}

	allowBroken := j.job.Role == pk.RoleRepairSystem

	return j.checkDeps(ctx, allowBroken)
}

// Done releases the archive lock, if held.
func (j *AptJob) Done() {
	if j.lock != nil {
		j.lock.Release()
		j.lock = nil
	}
}

// checkDeps verifies the cache starts from a clean slate and repairs
// half-installed packages; with allowBroken false it additionally
// fixes broken dependencies or refuses the job.
func (j *AptJob) checkDeps(ctx context.Context, allowBroken bool) bool {
	if j.cache.DelCount() != 0 || j.cache.InstCount() != 0 {
		j.log.Error("cache opened with non-zero pending counts")
		j.emitter.ErrorCode(pk.ErrorInternalError,
			gotext.Get("Internal error, non-zero counts"))

		return false
	}

	if err := j.cache.ApplyStatus(); err != nil {
		j.emitter.ErrorCode(pk.ErrorInternalError,
			gotext.Get("Unable to apply corrections for half-installed packages"))

		return false
	}

	if j.cache.BrokenCount() == 0 || allowBroken {
		return true
	}

	if err := j.cache.FixBroken(ctx); err != nil {
		j.showBroken(true, pk.ErrorUnfinishedTransaction)
		j.log.WithError(err).Warn("unable to correct dependencies")

		return false
	}

	if err := j.cache.MinimizeUpgrade(); err != nil {
		j.emitter.ErrorCode(pk.ErrorInternalError, err.Error())
		return false
	}

	return true
}

func (j *AptJob) cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}
