package mock

import (
	"fmt"

	"github.com/imz/PackageKit/pkg/pk"
)

// PackageEvent is one recorded Package emission.
type PackageEvent struct {
	Info      pk.Info
	PackageID string
	Summary   string
}

// ErrorEvent is one recorded ErrorCode emission.
type ErrorEvent struct {
	Code    pk.Error
	Message string
}

// Emitter records every job event for assertions. Optional function
// fields intercept individual calls when a test needs to react to them.
type Emitter struct {
	Packages      []PackageEvent
	DetailList    []pk.Details
	UpdateDetails []pk.UpdateDetail
	Errors        []ErrorEvent
	Statuses      []pk.Status
	Percentages   []uint
	Restarts      []string
	MediaChanges  []string
	SizeRemaining uint64
	CancelAllowed bool

	PackageFn     func(info pk.Info, packageID, summary string)
	ErrorCodeFn   func(code pk.Error, message string)
	MediaChangeFn func(mediaType, id, text string)
}

func (e *Emitter) Package(info pk.Info, packageID, summary string) {
	if e.PackageFn != nil {
		e.PackageFn(info, packageID, summary)
	}

	e.Packages = append(e.Packages, PackageEvent{Info: info, PackageID: packageID, Summary: summary})
}

func (e *Emitter) Details(d pk.Details) {
	e.DetailList = append(e.DetailList, d)
}

func (e *Emitter) UpdateDetail(d pk.UpdateDetail) {
	e.UpdateDetails = append(e.UpdateDetails, d)
}

func (e *Emitter) ItemProgress(packageID string, status pk.Status, percent uint) {
}

func (e *Emitter) Percentage(percent uint) {
	e.Percentages = append(e.Percentages, percent)
}

func (e *Emitter) Status(status pk.Status) {
	e.Statuses = append(e.Statuses, status)
}

func (e *Emitter) ErrorCode(code pk.Error, message string) {
	if e.ErrorCodeFn != nil {
		e.ErrorCodeFn(code, message)
	}

	e.Errors = append(e.Errors, ErrorEvent{Code: code, Message: message})
}

func (e *Emitter) RequireRestart(restart pk.Restart, packageID string) {
	e.Restarts = append(e.Restarts, fmt.Sprintf("%s:%s", restart, packageID))
}

func (e *Emitter) DownloadSizeRemaining(bytes uint64) {
	e.SizeRemaining = bytes
}

func (e *Emitter) AllowCancel(allow bool) {
	e.CancelAllowed = allow
}

func (e *Emitter) MediaChangeRequired(mediaType, id, text string) {
	if e.MediaChangeFn != nil {
		e.MediaChangeFn(mediaType, id, text)
	}

	e.MediaChanges = append(e.MediaChanges, id)
}

// PackageIDs returns the ids of all recorded Package events, in order.
func (e *Emitter) PackageIDs() []string {
	ids := make([]string, 0, len(e.Packages))
	for _, p := range e.Packages {
		ids = append(ids, p.PackageID)
	}

	return ids
}

// LastError returns the last recorded error event, if any.
func (e *Emitter) LastError() (ErrorEvent, bool) {
	if len(e.Errors) == 0 {
		return ErrorEvent{}, false
	}

	return e.Errors[len(e.Errors)-1], true
}
