package apt

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrLockHeld reports that another process holds the archive lock.
var ErrLockHeld = errors.New("could not get lock")

// Lock is an exclusive advisory lock on the package system, taken on
// a lock file inside the archive directory.
type Lock struct {
	fd   int
	path string
}

// AcquireLock takes the lock non-blocking. When another process holds
// it the returned error wraps ErrLockHeld, so callers can retry.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "lock")

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_CLOEXEC, 0o640)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		unix.Close(fd)

		if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
			return nil, errors.Wrap(ErrLockHeld, path)
		}

		return nil, errors.Wrapf(err, "flock %s", path)
	}

	return &Lock{fd: fd, path: path}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.fd < 0 {
		return nil
	}

	err := unix.Flock(l.fd, unix.LOCK_UN)
	unix.Close(l.fd)
	l.fd = -1

	return err
}
