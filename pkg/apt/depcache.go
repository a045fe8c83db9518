package apt

// Mode is the pending operation recorded for a package.
type Mode uint8

const (
	ModeKeep Mode = iota
	ModeInstall
	ModeDelete
)

// State is the per-package dependency-cache entry. It is rebuilt at
// job start and discarded at job end; nothing here persists.
type State struct {
	Mode      Mode
	Candidate VerID
	Install   VerID // selected version when Mode == ModeInstall
	Auto      bool
}

// stateView selects which world a satisfaction check runs against.
type stateView uint8

const (
	viewNow stateView = iota
	viewInstall
)

// ResetState rebuilds the dependency state: every package keeps its
// current version, candidates are recomputed, auto flags are taken
// from the installed records.
func (c *Cache) ResetState() {
	c.state = make([]State, len(c.pkgs))
	for i := range c.pkgs {
		c.state[i] = State{
			Mode:      ModeKeep,
			Candidate: c.computeCandidate(PkgID(i)),
			Install:   NoVer,
			Auto:      c.pkgs[i].Auto,
		}
	}
}

// computeCandidate picks the best installable version: the newest
// downloadable one.
func (c *Cache) computeCandidate(pkg PkgID) VerID {
	for _, v := range c.pkgs[pkg].versions {
		if c.vers[v].Downloadable() {
			return v
		}
	}

	return NoVer
}

// State returns a copy of the package's dependency-state entry.
func (c *Cache) State(pkg PkgID) State {
	return c.state[pkg]
}

// CandidateVer returns the package's candidate version handle or NoVer.
func (c *Cache) CandidateVer(pkg PkgID) VerID {
	return c.state[pkg].Candidate
}

// SetCandidateVersion overrides the candidate selection with a
// specific version, as explicit package-IDs demand exact versions.
func (c *Cache) SetCandidateVersion(ver VerID) {
	c.state[c.vers[ver].Pkg].Candidate = ver
}

// instVer returns the version the package will have after the pending
// operations run.
func (c *Cache) instVer(pkg PkgID) VerID {
	switch c.state[pkg].Mode {
	case ModeInstall:
		return c.state[pkg].Install
	case ModeDelete:
		return NoVer
	}

	return c.pkgs[pkg].currentVer
}

// InstVer is the exported view of instVer, used by the adapter's
// broken-dependency formatter.
func (c *Cache) InstVer(pkg PkgID) VerID {
	return c.instVer(pkg)
}

func (c *Cache) activeVer(pkg PkgID, view stateView) VerID {
	if view == viewNow {
		return c.pkgs[pkg].currentVer
	}

	return c.instVer(pkg)
}

// NewInstall reports a pending first-time install.
func (c *Cache) NewInstall(pkg PkgID) bool {
	return c.state[pkg].Mode == ModeInstall && c.pkgs[pkg].currentVer == NoVer
}

// Upgrade reports a pending move to a newer version.
func (c *Cache) Upgrade(pkg PkgID) bool {
	st := c.state[pkg]
	cur := c.pkgs[pkg].currentVer
	if st.Mode != ModeInstall || cur == NoVer {
		return false
	}

	return CompareVersions(c.vers[st.Install].Version, c.vers[cur].Version) > 0
}

// Downgrade reports a pending move to an older version.
func (c *Cache) Downgrade(pkg PkgID) bool {
	st := c.state[pkg]
	cur := c.pkgs[pkg].currentVer
	if st.Mode != ModeInstall || cur == NoVer {
		return false
	}

	return CompareVersions(c.vers[st.Install].Version, c.vers[cur].Version) < 0
}

// Delete reports a pending removal.
func (c *Cache) Delete(pkg PkgID) bool {
	return c.state[pkg].Mode == ModeDelete
}

// Upgradable reports that a newer candidate exists for an installed
// package, regardless of pending operations.
func (c *Cache) Upgradable(pkg PkgID) bool {
	cur := c.pkgs[pkg].currentVer
	cand := c.state[pkg].Candidate
	if cur == NoVer || cand == NoVer {
		return false
	}

	return CompareVersions(c.vers[cand].Version, c.vers[cur].Version) > 0
}

// depSatisfied evaluates one alternative against a world view. For
// positive dependency types it checks the target (or a provider) is
// present and meets the constraint.
func (c *Cache) depSatisfied(dep Dependency, view stateView) bool {
	target, ok := c.byName[dep.Target]
	if !ok {
		return false
	}

	if c.versionSatisfies(c.activeVer(target, view), dep) {
		return true
	}

	for _, pv := range c.pkgs[target].providedBy {
		owner := c.vers[pv].Pkg
		if c.activeVer(owner, view) == pv && c.providerSatisfies(dep) {
			return true
		}
	}

	return false
}

// groupSatisfied evaluates an or-group. Conflicts/Obsoletes groups are
// "satisfied" when no active version violates them.
func (c *Cache) groupSatisfied(owner PkgID, g DepGroup, view stateView) bool {
	if g.Type == DepConflicts || g.Type == DepObsoletes {
		for _, alt := range g.Alternatives {
			target, ok := c.byName[alt.Target]
			if !ok || target == owner {
				continue
			}

			if c.versionSatisfies(c.activeVer(target, view), alt) {
				return false
			}
		}

		return true
	}

	for _, alt := range g.Alternatives {
		if c.depSatisfied(alt, view) {
			return true
		}
	}

	return false
}

// DepGroupSatisfied is the exported view of groupSatisfied, evaluated
// against the installed world (now) or the post-transaction one.
func (c *Cache) DepGroupSatisfied(owner PkgID, g DepGroup, now bool) bool {
	view := viewInstall
	if now {
		view = viewNow
	}

	return c.groupSatisfied(owner, g, view)
}

func (c *Cache) verBroken(pkg PkgID, ver VerID, view stateView) bool {
	if ver == NoVer {
		return false
	}

	for _, g := range c.vers[ver].Depends {
		if !g.Type.important() && g.Type != DepConflicts {
			continue
		}

		if !c.groupSatisfied(pkg, g, view) {
			return true
		}
	}

	return false
}

// InstBroken reports that the package's post-transaction version has
// an unsatisfiable important dependency or an active conflict.
func (c *Cache) InstBroken(pkg PkgID) bool {
	return c.verBroken(pkg, c.instVer(pkg), viewInstall)
}

// NowBroken reports brokenness of the currently-installed version.
func (c *Cache) NowBroken(pkg PkgID) bool {
	return c.verBroken(pkg, c.pkgs[pkg].currentVer, viewNow)
}

// BrokenCount counts packages whose post-transaction state is broken.
func (c *Cache) BrokenCount() int {
	n := 0
	for i := range c.pkgs {
		if c.InstBroken(PkgID(i)) {
			n++
		}
	}

	return n
}

// NowBrokenCount counts packages broken in the installed state.
func (c *Cache) NowBrokenCount() int {
	n := 0
	for i := range c.pkgs {
		if c.NowBroken(PkgID(i)) {
			n++
		}
	}

	return n
}

// InstCount counts pending installs.
func (c *Cache) InstCount() int {
	n := 0
	for i := range c.state {
		if c.state[i].Mode == ModeInstall {
			n++
		}
	}

	return n
}

// DelCount counts pending removals.
func (c *Cache) DelCount() int {
	n := 0
	for i := range c.state {
		if c.state[i].Mode == ModeDelete {
			n++
		}
	}

	return n
}

// MarkInstall records an install of the package's candidate version.
// fromUser clears the auto flag; autoInst additionally walks the
// candidate's dependencies and marks unsatisfied alternatives, first
// match wins. Running without autoInst first lets explicitly requested
// packages pin or-group alternatives before any implicit expansion.
func (c *Cache) MarkInstall(pkg PkgID, fromUser, autoInst bool) {
	c.markInstall(pkg, fromUser, autoInst, make(map[PkgID]bool))
}

func (c *Cache) markInstall(pkg PkgID, fromUser, autoInst bool, visiting map[PkgID]bool) {
	if visiting[pkg] {
		return
	}
	visiting[pkg] = true

	st := &c.state[pkg]
	cand := st.Candidate
	if cand == NoVer {
		return
	}

	if c.pkgs[pkg].currentVer == cand {
		if st.Mode == ModeDelete {
			st.Mode = ModeKeep
			st.Install = NoVer
		}
	} else {
		st.Mode = ModeInstall
		st.Install = cand
	}

	if fromUser {
		st.Auto = false
	} else if !c.pkgs[pkg].Installed() {
		st.Auto = true
	}

	if !autoInst {
		return
	}

	for _, g := range c.vers[cand].Depends {
		if !g.Type.important() {
			continue
		}

		if c.groupSatisfied(pkg, g, viewInstall) {
			continue
		}

		for _, alt := range g.Alternatives {
			target, ok := c.byName[alt.Target]
			if !ok {
				continue
			}

			tc := c.state[target].Candidate
			if tc != NoVer && c.versionSatisfies(tc, alt) {
				c.markInstall(target, false, true, visiting)
				break
			}

			provided := false
			for _, pv := range c.pkgs[target].providedBy {
				if c.providerSatisfies(alt) {
					c.markInstall(c.vers[pv].Pkg, false, true, visiting)
					provided = true
					break
				}
			}

			if provided {
				break
			}
		}
	}
}

// MarkDelete records a removal. Purge semantics are not requested by
// the daemon, so configuration files are kept.
func (c *Cache) MarkDelete(pkg PkgID) {
	st := &c.state[pkg]
	st.Install = NoVer
	if c.pkgs[pkg].Installed() {
		st.Mode = ModeDelete
	} else {
		st.Mode = ModeKeep
	}
}

// MarkKeep cancels any pending operation on the package.
func (c *Cache) MarkKeep(pkg PkgID) {
	st := &c.state[pkg]
	st.Mode = ModeKeep
	st.Install = NoVer
}

// MarkAuto flips the auto-installed flag in the pending state.
func (c *Cache) MarkAuto(pkg PkgID, auto bool) {
	c.state[pkg].Auto = auto
}

// SaveState snapshots the dependency state so speculative marking (the
// downloaded filter's dry run) can be rolled back without touching the
// live resolver state.
func (c *Cache) SaveState() []State {
	return append([]State(nil), c.state...)
}

// RestoreState rolls the dependency state back to a snapshot taken on
// the same cache build.
func (c *Cache) RestoreState(snapshot []State) {
	copy(c.state, snapshot)
}
