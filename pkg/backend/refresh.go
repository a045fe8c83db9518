package backend

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
	"github.com/pkg/errors"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// refreshCache fetches a fresh index snapshot and rebuilds the cache
// from it. Without a configured index source only the on-disk snapshot
// is re-read, so a stale in-memory build still picks up local changes.
func (j *AptJob) refreshCache(ctx context.Context) bool {
	j.emitter.Status(pk.StatusRefreshCache)
	j.emitter.AllowCancel(true)

	if j.cfg.IndexURL != "" {
		if !j.job.Online {
			j.emitter.ErrorCode(pk.ErrorNoNetwork,
				gotext.Get("Cannot refresh cache whilst offline"))

			return false
		}

		if err := j.fetchIndex(ctx); err != nil {
			j.emitter.ErrorCode(pk.ErrorRepoNotAvailable, err.Error())
			return false
		}
	} else if _, err := os.Stat(j.cfg.SnapshotPath); os.IsNotExist(err) {
		// Nothing fetched and nothing cached; keep the current build.
		return true
	}

	fresh, err := apt.LoadSnapshot(j.cfg.SnapshotPath)
	if err != nil {
		j.emitter.ErrorCode(pk.ErrorInternalError, err.Error())
		return false
	}

	j.cache = fresh

	return true
}

// fetchIndex downloads the index snapshot into the snapshot path,
// going through a temp file so a failed transfer never clobbers the
// previous snapshot.
func (j *AptJob) fetchIndex(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.cfg.IndexURL, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s fetching %s", resp.Status, j.cfg.IndexURL)
	}

	if err := os.MkdirAll(filepath.Dir(j.cfg.SnapshotPath), 0o755); err != nil {
		return err
	}

	partial := j.cfg.SnapshotPath + ".partial"
	out, err := os.Create(partial)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(partial)

		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Rename(partial, j.cfg.SnapshotPath)
}
