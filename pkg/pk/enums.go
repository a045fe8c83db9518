package pk

// Info describes the state a package is emitted with.
type Info int

const (
	InfoUnknown Info = iota
	InfoInstalled
	InfoAvailable
	InfoNormal
	InfoInstalling
	InfoRemoving
	InfoUpdating
	InfoDowngrading
	InfoObsoleting
	InfoBlocked
	InfoDownloading
	InfoFinished
)

func (i Info) String() string {
	switch i {
	case InfoInstalled:
		return "installed"
	case InfoAvailable:
		return "available"
	case InfoNormal:
		return "normal"
	case InfoInstalling:
		return "installing"
	case InfoRemoving:
		return "removing"
	case InfoUpdating:
		return "updating"
	case InfoDowngrading:
		return "downgrading"
	case InfoObsoleting:
		return "obsoleting"
	case InfoBlocked:
		return "blocked"
	case InfoDownloading:
		return "downloading"
	case InfoFinished:
		return "finished"
	}

	return "unknown"
}

// Status is the coarse phase a job reports while it runs.
type Status int

const (
	StatusUnknown Status = iota
	StatusWait
	StatusQuery
	StatusRunning
	StatusRefreshCache
	StatusDownload
	StatusDownloadChangelog
	StatusInstall
	StatusRemove
	StatusUpdate
	StatusLoadingCache
	StatusWaitingForLock
	StatusCancel
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWait:
		return "wait"
	case StatusQuery:
		return "query"
	case StatusRunning:
		return "running"
	case StatusRefreshCache:
		return "refresh-cache"
	case StatusDownload:
		return "download"
	case StatusDownloadChangelog:
		return "download-changelog"
	case StatusInstall:
		return "install"
	case StatusRemove:
		return "remove"
	case StatusUpdate:
		return "update"
	case StatusLoadingCache:
		return "loading-cache"
	case StatusWaitingForLock:
		return "waiting-for-lock"
	case StatusCancel:
		return "cancel"
	case StatusFinished:
		return "finished"
	}

	return "unknown"
}

// Error is the fixed error taxonomy surfaced to the daemon.
type Error int

const (
	ErrorUnknown Error = iota
	ErrorCannotGetLock
	ErrorDepResolutionFailed
	ErrorInternalError
	ErrorNoCandidate
	ErrorPackageDownloadFailed
	ErrorNoNetwork
	ErrorNoSpaceOnDevice
	ErrorCannotRemoveSystemPackage
	ErrorGroupNotFound
	ErrorMetadataLoadFailed
	ErrorUnfinishedTransaction
	ErrorTransactionCancelled
	ErrorRepoNotAvailable
)

func (e Error) String() string {
	switch e {
	case ErrorCannotGetLock:
		return "cannot-get-lock"
	case ErrorDepResolutionFailed:
		return "dep-resolution-failed"
	case ErrorInternalError:
		return "internal-error"
	case ErrorNoCandidate:
		return "no-installation-candidate"
	case ErrorPackageDownloadFailed:
		return "package-download-failed"
	case ErrorNoNetwork:
		return "no-network"
	case ErrorNoSpaceOnDevice:
		return "no-space-on-device"
	case ErrorCannotRemoveSystemPackage:
		return "cannot-remove-system-package"
	case ErrorGroupNotFound:
		return "group-not-found"
	case ErrorMetadataLoadFailed:
		return "metadata-load-failed"
	case ErrorUnfinishedTransaction:
		return "unfinished-transaction"
	case ErrorTransactionCancelled:
		return "transaction-cancelled"
	case ErrorRepoNotAvailable:
		return "repo-not-available"
	}

	return "unknown"
}

// Role is the operation the daemon asked the backend to perform.
type Role int

const (
	RoleUnknown Role = iota
	RoleResolve
	RoleSearchName
	RoleSearchDetails
	RoleSearchGroup
	RoleGetPackages
	RoleGetDetails
	RoleGetUpdates
	RoleGetUpdateDetail
	RoleGetDepends
	RoleGetRequires
	RoleInstallPackages
	RoleRemovePackages
	RoleUpdatePackages
	RoleRefreshCache
	RoleRepairSystem
	RoleWhatProvides
)

func (r Role) String() string {
	switch r {
	case RoleResolve:
		return "resolve"
	case RoleSearchName:
		return "search-name"
	case RoleSearchDetails:
		return "search-details"
	case RoleSearchGroup:
		return "search-group"
	case RoleGetPackages:
		return "get-packages"
	case RoleGetDetails:
		return "get-details"
	case RoleGetUpdates:
		return "get-updates"
	case RoleGetUpdateDetail:
		return "get-update-detail"
	case RoleGetDepends:
		return "get-depends"
	case RoleGetRequires:
		return "get-requires"
	case RoleInstallPackages:
		return "install-packages"
	case RoleRemovePackages:
		return "remove-packages"
	case RoleUpdatePackages:
		return "update-packages"
	case RoleRefreshCache:
		return "refresh-cache"
	case RoleRepairSystem:
		return "repair-system"
	case RoleWhatProvides:
		return "what-provides"
	}

	return "unknown"
}

// Mutating roles open the cache with an exclusive archive lock.
func (r Role) NeedsLock() bool {
	switch r {
	case RoleInstallPackages, RoleRemovePackages, RoleUpdatePackages,
		RoleRepairSystem:
		return true
	}

	return false
}

type Restart int

const (
	RestartNone Restart = iota
	RestartApplication
	RestartSession
	RestartSystem
)

func (r Restart) String() string {
	switch r {
	case RestartApplication:
		return "application"
	case RestartSession:
		return "session"
	case RestartSystem:
		return "system"
	}

	return "none"
}

type UpdateState int

const (
	UpdateStateUnknown UpdateState = iota
	UpdateStateStable
	UpdateStateTesting
	UpdateStateUnstable
)

func (u UpdateState) String() string {
	switch u {
	case UpdateStateStable:
		return "stable"
	case UpdateStateTesting:
		return "testing"
	case UpdateStateUnstable:
		return "unstable"
	}

	return "unknown"
}

// Filter is the query filter bitfield. Pair members are mutually
// exclusive; a package must satisfy every requested filter.
type Filter uint64

const (
	FilterInstalled Filter = 1 << iota
	FilterNotInstalled
	FilterDevelopment
	FilterNotDevelopment
	FilterGui
	FilterNotGui
	FilterFree
	FilterNotFree
	FilterDownloaded
	FilterNewest
	FilterNotNewest
)

const FilterNone Filter = 0

func (f Filter) Has(other Filter) bool {
	return f&other != 0
}

var filterNames = map[string]Filter{
	"installed":      FilterInstalled,
	"~installed":     FilterNotInstalled,
	"devel":          FilterDevelopment,
	"~devel":         FilterNotDevelopment,
	"gui":            FilterGui,
	"~gui":           FilterNotGui,
	"free":           FilterFree,
	"~free":          FilterNotFree,
	"downloaded":     FilterDownloaded,
	"newest":         FilterNewest,
	"~newest":        FilterNotNewest,
	"none":           FilterNone,
}

// ParseFilter parses a single daemon filter word; unknown words map to
// FilterNone so a newer daemon does not break an older backend.
func ParseFilter(name string) Filter {
	return filterNames[name]
}

// TransactionFlag modifies how a transaction runs.
type TransactionFlag uint64

const (
	TransactionFlagSimulate TransactionFlag = 1 << iota
	TransactionFlagOnlyDownload
	TransactionFlagAllowDowngrade
)

const TransactionFlagNone TransactionFlag = 0

func (t TransactionFlag) Has(other TransactionFlag) bool {
	return t&other != 0
}

// Group is the PackageKit package group taxonomy.
type Group int

const (
	GroupUnknown Group = iota
	GroupAccessibility
	GroupAccessories
	GroupAdminTools
	GroupCommunication
	GroupDesktopGnome
	GroupDesktopKde
	GroupDesktopOther
	GroupDesktopXfce
	GroupDocumentation
	GroupEducation
	GroupElectronics
	GroupFonts
	GroupGames
	GroupGraphics
	GroupInternet
	GroupLegacy
	GroupLocalization
	GroupMultimedia
	GroupNetwork
	GroupOffice
	GroupOther
	GroupProgramming
	GroupPublishing
	GroupScience
	GroupServers
	GroupSystem
)

var groupNames = map[Group]string{
	GroupAccessibility: "accessibility",
	GroupAccessories:   "accessories",
	GroupAdminTools:    "admin-tools",
	GroupCommunication: "communication",
	GroupDesktopGnome:  "desktop-gnome",
	GroupDesktopKde:    "desktop-kde",
	GroupDesktopOther:  "desktop-other",
	GroupDesktopXfce:   "desktop-xfce",
	GroupDocumentation: "documentation",
	GroupEducation:     "education",
	GroupElectronics:   "electronics",
	GroupFonts:         "fonts",
	GroupGames:         "games",
	GroupGraphics:      "graphics",
	GroupInternet:      "internet",
	GroupLegacy:        "legacy",
	GroupLocalization:  "localization",
	GroupMultimedia:    "multimedia",
	GroupNetwork:       "network",
	GroupOffice:        "office",
	GroupOther:         "other",
	GroupProgramming:   "programming",
	GroupPublishing:    "publishing",
	GroupScience:       "science",
	GroupServers:       "servers",
	GroupSystem:        "system",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}

	return "unknown"
}

// GroupFromString is the inverse of Group.String; unknown names return
// GroupUnknown and false.
func GroupFromString(name string) (Group, bool) {
	for g, n := range groupNames {
		if n == name {
			return g, true
		}
	}

	return GroupUnknown, false
}
