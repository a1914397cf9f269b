package busregistry

import (
	"fmt"
	"sync"
)

// CaptureMode is the per-output-field capture selector (§4.6). The
// concrete label set varies by output sub-type, so CaptureMode values
// are opaque indices into whichever label list the owning class chose.
type CaptureMode int

// Label sets for the four output sub-types named in §4.6. Each is used
// verbatim as a static enum.Labels() result and as the Parse/Format
// domain for that field's CAPTURE attribute.
var (
	PosOutCaptureLabels        = []string{"No", "Triggered", "Difference"}
	PosOutEncoderCaptureLabels = []string{"No", "Triggered", "Difference", "Average", "Extended"}
	AdcCaptureLabels           = []string{"No", "Triggered", "Average"}
	ExtOutCaptureLabels        = []string{"No", "Capture"}
	// BitOutCaptureLabels is bit_out's own capture label set. §4.6's
	// capture table has no bit_out row, so this is not aliased to
	// ExtOutCaptureLabels even though the values happen to match.
	BitOutCaptureLabels = []string{"No", "Capture"}
)

// CaptureState guards one output field instance's capture selector.
// Capture changes must not race with the capture-consumer thread
// reading the currently armed selection, so access goes through a
// dedicated mutex rather than the shared Bus lock.
type CaptureState struct {
	mu     sync.Mutex
	labels []string
	mode   []CaptureMode
}

// NewCaptureState allocates capture state for n field instances, each
// defaulting to mode 0 ("No").
func NewCaptureState(labels []string, n int) *CaptureState {
	return &CaptureState{labels: labels, mode: make([]CaptureMode, n)}
}

// Get returns instance n's current capture label.
func (c *CaptureState) Get(n int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels[c.mode[n]]
}

// Set parses label against this field's label set and stores it.
func (c *CaptureState) Set(n int, label string) error {
	for i, l := range c.labels {
		if l == label {
			c.mu.Lock()
			c.mode[n] = CaptureMode(i)
			c.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("invalid capture mode %q", label)
}

// Mode returns the raw capture mode for instance n, for the capture
// consumer to decide what to emit.
func (c *CaptureState) Mode(n int) CaptureMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode[n]
}

// Len returns the number of tracked instances.
func (c *CaptureState) Len() int {
	return len(c.mode)
}

// Labels returns this field's capture label set.
func (c *CaptureState) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}
