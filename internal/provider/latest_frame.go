package provider

import (
	"fmt"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

// latestFrame keeps the newest decoded pose pushed by a remote detector until
// the processing loop takes it. Older unconsumed frames are overwritten since
// only the current posture matters.
type latestFrame struct {
	mu       sync.Mutex
	pending  *pose.Pose
	received uint64
	rejected uint64
}

func (f *latestFrame) accept(payload []byte) error {
	p, err := pose.Decode(payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rejected++
		return fmt.Errorf("decode frame: %w", err)
	}
	f.received++
	f.pending = &p
	return nil
}

// take returns the pending pose, or nothing if no frame arrived since the last call
func (f *latestFrame) take() []pose.Pose {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return nil
	}
	p := *f.pending
	f.pending = nil
	return []pose.Pose{p}
}

// Stats counts the frames accepted and rejected since startup
type Stats struct {
	Received uint64
	Rejected uint64
}

func (f *latestFrame) stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{Received: f.received, Rejected: f.rejected}
}
