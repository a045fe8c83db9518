package apt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/imz/PackageKit/pkg/multierror"
)

var (
	ErrNoArchiveSource = errors.New("no source index lists an archive for this version")
	ErrHashMismatch    = errors.New("downloaded archive does not match its index hash")
)

// Item is one archive the fetcher will provide: either already present
// in the archive directory (Local) or downloadable from its origin.
type Item struct {
	Ver      VerID
	Desc     string
	URI      string
	DestFile string
	Size     uint64
	Hash     string
	Local    bool
	Err      error
}

// AcquireStatus receives fetch lifecycle callbacks. It is the pull
// side the progress bridge adapts to the daemon's push events.
type AcquireStatus interface {
	// MediaChange asks for removable media; returning false aborts.
	MediaChange(media, drive string) bool
	IMSHit(item *Item)
	Fetch(item *Item)
	Done(item *Item)
	Fail(item *Item)
	Start()
	Stop()
	// Pulse reports overall progress; returning false cancels the run.
	Pulse(fetchedBytes, totalBytes uint64, currentCPS float64) bool
}

// Acquire stages and fetches package archives into the archive
// directory. One Acquire serves one job.
type Acquire struct {
	cache  *Cache
	dir    string
	status AcquireStatus
	client *http.Client
	items  []*Item
}

func NewAcquire(cache *Cache, dir string, status AcquireStatus) *Acquire {
	return &Acquire{
		cache:  cache,
		dir:    dir,
		status: status,
		client: http.DefaultClient,
	}
}

// Items returns the staged items.
func (a *Acquire) Items() []*Item {
	return a.items
}

// GetArchives stages one item per pending install, mirroring the
// package manager's archive listing. Already-present files are flagged
// Local instead of queued for download.
func (a *Acquire) GetArchives() error {
	for i := range a.cache.pkgs {
		pkg := PkgID(i)
		st := a.cache.state[pkg]
		if st.Mode != ModeInstall || st.Install == NoVer {
			continue
		}

		if err := a.StageVersion(st.Install); err != nil {
			return err
		}
	}

	return nil
}

// StageVersion stages a single version's archive.
func (a *Acquire) StageVersion(ver VerID) error {
	v := a.cache.Ver(ver)
	rec := v.File()
	if rec == nil || rec.NotSource || rec.URL == "" {
		return errors.Wrap(ErrNoArchiveSource, a.cache.Pkg(v.Pkg).Name)
	}

	item := &Item{
		Ver:      ver,
		Desc:     a.cache.Pkg(v.Pkg).Name + "_" + v.Version + "_" + v.Arch,
		URI:      rec.URL,
		DestFile: filepath.Join(a.dir, archiveFileName(a.cache.Pkg(v.Pkg).Name, v)),
		Size:     v.Size,
		Hash:     rec.Hash,
	}

	if fi, err := os.Stat(item.DestFile); err == nil && fi.Size() == int64(v.Size) {
		item.Local = true
	}

	a.items = append(a.items, item)

	return nil
}

// quote ':' and '_' like archive file names in the cache dir do, so
// distinct (name, version, arch) triples never collide.
func quoteArchiveField(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, ":", "%3a")
	s = strings.ReplaceAll(s, "_", "%5f")

	return s
}

func archiveFileName(name string, v *Version) string {
	ext := ".rpm"
	if rec := v.File(); rec != nil && rec.URL != "" {
		if u, err := url.Parse(rec.URL); err == nil {
			if e := path.Ext(u.Path); e != "" {
				ext = e
			}
		}
	}

	return quoteArchiveField(name) + "_" +
		quoteArchiveField(v.Version) + "_" +
		quoteArchiveField(v.Arch) + ext
}

// FetchNeeded sums the bytes still to download.
func (a *Acquire) FetchNeeded() uint64 {
	var n uint64
	for _, item := range a.items {
		if !item.Local {
			n += item.Size
		}
	}

	return n
}

// PartialPresent sums the bytes already present locally.
func (a *Acquire) PartialPresent() uint64 {
	var n uint64
	for _, item := range a.items {
		if item.Local {
			n += item.Size
		}
	}

	return n
}

// TotalNeeded sums the size of every staged archive.
func (a *Acquire) TotalNeeded() uint64 {
	var n uint64
	for _, item := range a.items {
		n += item.Size
	}

	return n
}

// Run downloads every staged non-local item, invoking the status
// callbacks as it goes. Cancellation is cooperative through ctx; a
// canceled run returns ctx's error. Item failures are aggregated.
func (a *Acquire) Run(ctx context.Context) error {
	if a.status != nil {
		a.status.Start()
		defer a.status.Stop()
	}

	var (
		failures multierror.MultiError
		fetched  uint64
		started  = time.Now()
	)

	total := a.TotalNeeded()

	for _, item := range a.items {
		if err := ctx.Err(); err != nil {
			return err
		}

		if item.Local {
			fetched += item.Size
			if a.status != nil {
				a.status.IMSHit(item)
			}

			continue
		}

		if a.status != nil {
			a.status.Fetch(item)
		}

		if err := a.fetchItem(ctx, item); err != nil {
			item.Err = err
			failures.Add(errors.Wrap(err, item.Desc))
			if a.status != nil {
				a.status.Fail(item)
			}

			continue
		}

		item.Local = true
		fetched += item.Size
		if a.status != nil {
			a.status.Done(item)

			cps := float64(fetched) / (time.Since(started).Seconds() + 1e-9)
			if !a.status.Pulse(fetched, total, cps) {
				return context.Canceled
			}
		}
	}

	return failures.Return()
}

func (a *Acquire) fetchItem(ctx context.Context, item *Item) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URI, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s fetching %s", resp.Status, item.URI)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}

	partial := item.DestFile + ".partial"
	out, err := os.Create(partial)
	if err != nil {
		return err
	}

	sum := sha256.New()

	if _, err := io.Copy(io.MultiWriter(out, sum), resp.Body); err != nil {
		out.Close()
		os.Remove(partial)

		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	if item.Hash != "" {
		want := strings.TrimPrefix(item.Hash, "sha256:")
		if got := hex.EncodeToString(sum.Sum(nil)); !strings.EqualFold(got, want) {
			os.Remove(partial)
			return errors.Wrap(ErrHashMismatch, item.Desc)
		}
	}

	return os.Rename(partial, item.DestFile)
}
