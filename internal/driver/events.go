package driver

import "time"

// Stage is a step of checking one document.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageExplain Stage = "explain"
)

// Status says where a file is within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	// StatusCached: the result came from the disk cache.
	StatusCached Status = "cached"
)

// Event describes progress of one file. File is empty for run-wide events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. It is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to Ch.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while a file is checked.
type PhaseObserver func(PhaseEvent)

func emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
