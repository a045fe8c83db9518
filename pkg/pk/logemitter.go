package pk

import (
	"github.com/sirupsen/logrus"
)

// LogEmitter forwards job events to a logrus logger. It backs the CLI
// harness and doubles as a tracing sink when debugging the backend
// against a live cache.
type LogEmitter struct {
	Log *logrus.Logger
}

func NewLogEmitter(log *logrus.Logger) *LogEmitter {
	return &LogEmitter{Log: log}
}

func (e *LogEmitter) Package(info Info, packageID, summary string) {
	e.Log.WithFields(logrus.Fields{
		"info":    info.String(),
		"package": packageID,
	}).Info(summary)
}

func (e *LogEmitter) Details(d Details) {
	e.Log.WithFields(logrus.Fields{
		"package": d.PackageID,
		"group":   d.Group.String(),
		"size":    d.Size,
	}).Info(d.Summary)
}

func (e *LogEmitter) UpdateDetail(d UpdateDetail) {
	e.Log.WithFields(logrus.Fields{
		"package": d.PackageID,
		"state":   d.State.String(),
		"issued":  d.Issued,
		"cves":    len(d.CVEURLs),
	}).Info("update detail")
}

func (e *LogEmitter) ItemProgress(packageID string, status Status, percent uint) {
	e.Log.WithFields(logrus.Fields{
		"package": packageID,
		"status":  status.String(),
		"percent": percent,
	}).Debug("item progress")
}

func (e *LogEmitter) Percentage(percent uint) {
	e.Log.WithField("percent", percent).Debug("progress")
}

func (e *LogEmitter) Status(status Status) {
	e.Log.WithField("status", status.String()).Debug("status")
}

func (e *LogEmitter) ErrorCode(code Error, message string) {
	e.Log.WithField("code", code.String()).Error(message)
}

func (e *LogEmitter) RequireRestart(restart Restart, packageID string) {
	e.Log.WithFields(logrus.Fields{
		"restart": restart.String(),
		"package": packageID,
	}).Warn("restart required")
}

func (e *LogEmitter) DownloadSizeRemaining(bytes uint64) {
	e.Log.WithField("bytes", bytes).Debug("download size remaining")
}

func (e *LogEmitter) AllowCancel(allow bool) {
	e.Log.WithField("allow", allow).Debug("allow cancel")
}

func (e *LogEmitter) MediaChangeRequired(mediaType, id, text string) {
	e.Log.WithFields(logrus.Fields{
		"media-type": mediaType,
		"media-id":   id,
	}).Warn(text)
}
