package backend

import (
	"context"

	"github.com/leonelquinteros/gotext"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// acquireProgress bridges the fetcher's pull callbacks onto the
// daemon's push events. Percentage updates are emitted only on change
// so the daemon is not flooded during large downloads.
type acquireProgress struct {
	job *AptJob
	ctx context.Context

	lastPercent uint
}

func newAcquireProgress(ctx context.Context, job *AptJob) *acquireProgress {
	return &acquireProgress{job: job, ctx: ctx, lastPercent: ^uint(0)}
}

func (a *acquireProgress) MediaChange(media, drive string) bool {
	a.job.emitter.MediaChangeRequired("disc", media,
		gotext.Get("Please insert the medium labeled '%s' into the drive '%s'", media, drive))

	return true
}

func (a *acquireProgress) Start() {
	a.job.emitter.Status(pk.StatusDownload)
	a.job.emitter.AllowCancel(true)
}

func (a *acquireProgress) Stop() {
	a.job.emitter.Percentage(100)
}

func (a *acquireProgress) IMSHit(item *apt.Item) {
	a.itemProgress(item, 100)
}

func (a *acquireProgress) Fetch(item *apt.Item) {
	if item.Ver != apt.NoVer {
		a.job.emitPackage(pk.InfoDownloading, item.Ver)
	}

	a.itemProgress(item, 0)
}

func (a *acquireProgress) Done(item *apt.Item) {
	a.itemProgress(item, 100)
}

func (a *acquireProgress) Fail(item *apt.Item) {
	a.job.log.WithField("item", item.Desc).WithError(item.Err).Warn("fetch failed")
}

func (a *acquireProgress) Pulse(fetched, total uint64, _ float64) bool {
	if total != 0 {
		percent := uint(fetched * 100 / total)
		if percent != a.lastPercent {
			a.job.emitter.Percentage(percent)
			a.lastPercent = percent
		}
	}

	return a.ctx.Err() == nil
}

func (a *acquireProgress) itemProgress(item *apt.Item, percent uint) {
	if item.Ver == apt.NoVer {
		return
	}

	a.job.emitter.ItemProgress(a.job.buildPackageID(item.Ver), pk.StatusDownload, percent)
}

// opProgress reports long cache operations, emitting the loading
// status once and percentages only on change.
type opProgress struct {
	emitter     pk.JobEmitter
	started     bool
	lastPercent uint
}

func newOpProgress(emitter pk.JobEmitter) *opProgress {
	return &opProgress{emitter: emitter, lastPercent: ^uint(0)}
}

func (o *opProgress) Update(percent uint) {
	if !o.started {
		o.emitter.Status(pk.StatusLoadingCache)
		o.started = true
	}

	if percent != o.lastPercent {
		o.emitter.Percentage(percent)
		o.lastPercent = percent
	}
}

func (o *opProgress) Done() {
	o.Update(100)
}
