package apt

import (
	"context"
	"os/exec"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// InstallProgress receives per-package commit progress: the package
// name, what is happening to it, and an overall percentage.
type InstallProgress func(name string, removing bool, percent uint)

// PackageManager commits the pending operations of a cache: removals
// first, then installs and upgrades in name order. An optional
// per-package hook command is spawned for configuration work; its PID
// is tracked so Kill can signal it when the job is canceled.
type PackageManager struct {
	cache   *Cache
	hookCmd []string

	mu       sync.Mutex
	childPID int
}

func NewPackageManager(cache *Cache) *PackageManager {
	return &PackageManager{cache: cache, childPID: -1}
}

// SetHook sets the command run once per committed package, with the
// package name appended as the final argument.
func (pm *PackageManager) SetHook(cmd []string) {
	pm.hookCmd = cmd
}

// Kill delivers SIGTERM to the currently running hook process, if any.
func (pm *PackageManager) Kill() {
	pm.mu.Lock()
	pid := pm.childPID
	pm.mu.Unlock()

	if pid > 0 {
		_ = unix.Kill(pid, unix.SIGTERM)
	}
}

func (pm *PackageManager) setChild(pid int) {
	pm.mu.Lock()
	pm.childPID = pid
	pm.mu.Unlock()
}

type commitOp struct {
	pkg      PkgID
	removing bool
}

func (pm *PackageManager) pendingOps() []commitOp {
	c := pm.cache

	var removals, installs []commitOp

	for i := range c.pkgs {
		pkg := PkgID(i)
		switch c.state[pkg].Mode {
		case ModeDelete:
			removals = append(removals, commitOp{pkg: pkg, removing: true})
		case ModeInstall:
			if c.state[pkg].Install != NoVer {
				installs = append(installs, commitOp{pkg: pkg})
			}
		}
	}

	byName := func(ops []commitOp) {
		sort.Slice(ops, func(a, b int) bool {
			return c.pkgs[ops[a].pkg].Name < c.pkgs[ops[b].pkg].Name
		})
	}
	byName(removals)
	byName(installs)

	return append(removals, installs...)
}

// DoInstall commits every pending operation to the cache, invoking
// progress after each package. Cancellation between packages is
// honored through ctx; a running hook is terminated.
func (pm *PackageManager) DoInstall(ctx context.Context, progress InstallProgress) error {
	ops := pm.pendingOps()

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := pm.cache.pkgs[op.pkg].Name

		if err := pm.runHook(ctx, name, op.removing); err != nil {
			return errors.Wrapf(err, "commit hook for %s", name)
		}

		pm.commit(op)

		if progress != nil {
			progress(name, op.removing, uint((i+1)*100/len(ops)))
		}
	}

	pm.cache.ResetState()

	return nil
}

func (pm *PackageManager) commit(op commitOp) {
	c := pm.cache
	p := &c.pkgs[op.pkg]

	if op.removing {
		p.currentVer = NoVer
		p.Auto = false
		p.InstallState = InstallStateOk

		return
	}

	p.currentVer = c.state[op.pkg].Install
	p.Auto = c.state[op.pkg].Auto
	p.InstallState = InstallStateOk
}

func (pm *PackageManager) runHook(ctx context.Context, name string, removing bool) error {
	if len(pm.hookCmd) == 0 {
		return nil
	}

	action := "install"
	if removing {
		action = "remove"
	}

	args := append(append([]string{}, pm.hookCmd[1:]...), action, name)
	cmd := exec.Command(pm.hookCmd[0], args...)

	if err := cmd.Start(); err != nil {
		return err
	}

	pm.setChild(cmd.Process.Pid)
	defer pm.setChild(-1)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		pm.Kill()
		<-done

		return ctx.Err()
	case err := <-done:
		return err
	}
}
