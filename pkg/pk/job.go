package pk

// Job carries one transaction request from the daemon to the backend.
type Job struct {
	Role        Role
	Filters     Filter
	Flags       TransactionFlag
	PackageIDs  []string
	Values      []string
	ProxyHTTP   string
	ProxyFTP    string
	Locale      string
	Interactive bool
	Online      bool
	AutoRemove  bool
	Recursive   bool
}

func (j *Job) Simulate() bool {
	return j.Flags.Has(TransactionFlagSimulate)
}

func (j *Job) OnlyDownload() bool {
	return j.Flags.Has(TransactionFlagOnlyDownload)
}

// Details is the payload of a get-details emission.
type Details struct {
	PackageID   string
	Summary     string
	License     string
	Group       Group
	Description string
	URL         string
	Size        uint64
}

// UpdateDetail is the payload of a get-update-detail emission.
type UpdateDetail struct {
	PackageID    string
	Updates      []string
	Obsoletes    []string
	BugzillaURLs []string
	CVEURLs      []string
	Restart      Restart
	UpdateText   string
	Changelog    string
	State        UpdateState
	Issued       string
	Updated      string
}

// JobEmitter is the push side of the daemon's job API. The backend
// calls it from a single goroutine; implementations need no locking.
type JobEmitter interface {
	Package(info Info, packageID, summary string)
	Details(d Details)
	UpdateDetail(d UpdateDetail)
	ItemProgress(packageID string, status Status, percent uint)
	Percentage(percent uint)
	Status(status Status)
	ErrorCode(code Error, message string)
	RequireRestart(restart Restart, packageID string)
	DownloadSizeRemaining(bytes uint64)
	AllowCancel(allow bool)
	// MediaChangeRequired is a non-fatal query; the job continues once
	// the collaborator returns.
	MediaChangeRequired(mediaType, id, text string)
}
