package backend

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Config holds the backend's host-side settings, read from an ini
// file. Every field has a workable default so a missing file is not an
// error.
type Config struct {
	// ArchiveDir receives downloaded package archives and holds the
	// lock file guarding mutating jobs.
	ArchiveDir string
	// RebootSentinel is touched by packaging hooks when an update
	// needs a reboot; its mtime is compared around a commit.
	RebootSentinel string
	// ChangelogTemplate is the changelog URI with {SOURCE} and
	// {VERSION} placeholders; empty disables changelog fetching.
	ChangelogTemplate string
	// MetadataPool is the AppStream-style JSON export queried for
	// mimetype provides.
	MetadataPool string
	// IndexURL is the remote cache snapshot a refresh downloads; empty
	// leaves refresh re-reading the local snapshot only.
	IndexURL string
	// SnapshotPath is where the downloaded snapshot lands and where a
	// refresh rebuilds the cache from.
	SnapshotPath string
	// CommitHook is run once per committed package.
	CommitHook []string
	// LockRetries bounds the one-second lock retry loop.
	LockRetries int
}

func DefaultConfig() Config {
	return Config{
		ArchiveDir:     "/var/cache/apt/archives",
		RebootSentinel: "/run/reboot-required",
		MetadataPool:   "/var/cache/app-info/pool.json",
		SnapshotPath:   "/var/cache/aptbackend/cache.yaml",
		LockRetries:    10,
	}
}

// LoadConfig reads path over the defaults. A missing file returns the
// defaults; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}

	main := file.Section("backend")
	cfg.ArchiveDir = main.Key("archive_dir").MustString(cfg.ArchiveDir)
	cfg.RebootSentinel = main.Key("reboot_sentinel").MustString(cfg.RebootSentinel)
	cfg.ChangelogTemplate = main.Key("changelog_template").MustString(cfg.ChangelogTemplate)
	cfg.MetadataPool = main.Key("metadata_pool").MustString(cfg.MetadataPool)
	cfg.IndexURL = main.Key("index_url").MustString(cfg.IndexURL)
	cfg.SnapshotPath = main.Key("snapshot_path").MustString(cfg.SnapshotPath)
	cfg.LockRetries = main.Key("lock_retries").MustInt(cfg.LockRetries)

	if hook := main.Key("commit_hook").String(); hook != "" {
		cfg.CommitHook = strings.Fields(hook)
	}

	return cfg, nil
}
