package provider

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

const maxReplayLineBytes = 1 << 20

// ReplayProvider plays back a recorded session, one JSON frame per line, one
// frame per call. It stands in for a live detector during development.
type ReplayProvider struct {
	logger *log.Logger
	loop   bool

	mu     sync.Mutex
	frames []pose.Pose
	next   int
}

// NewReplayProvider reads every frame from r. Malformed lines are logged and skipped.
func NewReplayProvider(r io.Reader, loop bool, logger *log.Logger) (*ReplayProvider, error) {
	if logger == nil {
		panic("ReplayProvider: logger cannot be nil")
	}

	p := &ReplayProvider{logger: logger, loop: loop}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReplayLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		frame, err := pose.Decode(raw)
		if err != nil {
			logger.Printf("ReplayProvider: Skipping line %d: %v", line, err)
			continue
		}
		p.frames = append(p.frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(p.frames) == 0 {
		return nil, errors.New("recording contains no valid frames")
	}

	logger.Printf("ReplayProvider: Loaded %d frames (loop=%v)", len(p.frames), loop)
	return p, nil
}

// OpenReplayProvider loads a recording from disk
func OpenReplayProvider(path string, loop bool, logger *log.Logger) (*ReplayProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return NewReplayProvider(f, loop, logger)
}

// EstimatePoses returns the next recorded frame. Once a non-looping recording
// is exhausted it returns no poses.
func (p *ReplayProvider) EstimatePoses(ctx context.Context) ([]pose.Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.frames) {
		if !p.loop {
			return nil, nil
		}
		p.next = 0
	}
	frame := p.frames[p.next]
	p.next++
	return []pose.Pose{frame}, nil
}

// Len returns the number of frames in the recording
func (p *ReplayProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}
