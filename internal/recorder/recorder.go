package recorder

import (
	"time"

	"IchiVSA/internal/model"
)

// SignalSnapshot holds one analysis run's latest-bar result for persistence.
type SignalSnapshot struct {
	Symbol  string
	Summary *model.Summary
}

// ExposureEvent records a target-exposure change driven by a signal.
type ExposureEvent struct {
	Symbol       string
	Signal       model.Label
	TargetBefore float64
	TargetAfter  float64
	Streak       int
	At           time.Time
}

// Recorder persists historical analysis output.
type Recorder interface {
	RecordSnapshot(snap *SignalSnapshot) error
	RecordExposure(evt *ExposureEvent) error
	Close() error
}
