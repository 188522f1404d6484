package badge

import (
	"context"
	"log"
	"time"
)

// Scan is one badge read delivered by a Reader.
type Scan struct {
	Tag string
	At  time.Time
}

// Reader delivers badge scans from whatever input source is attached.  The
// real RFID hardware driver plugs in behind this interface; LineReader
// stands in for it during development and in tests.
type Reader interface {
	// Read blocks until a scan arrives, the source is exhausted (io.EOF),
	// or ctx is cancelled.
	Read(ctx context.Context) (Scan, error)
}

// Indicator is the feedback seam for the reader's LEDs/beeper.  The kiosk
// calls it after every scan; hardware-specific implementations live with
// the driver.
type Indicator interface {
	Success()
	Error()
}

// LogIndicator is an Indicator that only logs.  Used when no hardware
// feedback channel is available.
type LogIndicator struct {
	logger *log.Logger
}

func NewLogIndicator(logger *log.Logger) *LogIndicator {
	return &LogIndicator{logger: logger}
}

func (i *LogIndicator) Success() { i.logger.Printf("indicator: success") }
func (i *LogIndicator) Error()   { i.logger.Printf("indicator: error") }
