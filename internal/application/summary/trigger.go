package summary

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// PrintFacility is the host environment's print/export flow.
// Print takes no parameters and its outcome is never reported back.
type PrintFacility interface {
	Print()
}

// PrintFacilityFunc adapts a function to PrintFacility
type PrintFacilityFunc func()

// Print calls f
func (f PrintFacilityFunc) Print() { f() }

// PrintTrigger is the "Print / Save as PDF" action. Each Fire hands exactly one
// call to the facility and returns immediately: there is no queue, retry or
// confirmation, and a failing or cancelled print is not observed.
type PrintTrigger struct {
	facility PrintFacility
	logger   *zap.Logger
	fired    atomic.Int64
}

// NewPrintTrigger creates a trigger for the facility. A nil facility makes
// the trigger unavailable.
func NewPrintTrigger(facility PrintFacility, logger *zap.Logger) *PrintTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintTrigger{
		facility: facility,
		logger:   logger,
	}
}

// Available reports whether a host print facility is attached
func (t *PrintTrigger) Available() bool {
	return t != nil && t.facility != nil
}

// Fire invokes the host print facility once without waiting for it.
// It reports false when no facility is attached.
func (t *PrintTrigger) Fire() bool {
	if !t.Available() {
		return false
	}
	t.fired.Add(1)
	go t.invoke()
	return true
}

// Fired returns how many times the trigger has fired
func (t *PrintTrigger) Fired() int64 {
	return t.fired.Load()
}

func (t *PrintTrigger) invoke() {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Warn("print facility panicked", zap.Any("panic", r))
		}
	}()
	t.facility.Print()
}
