package trainer

import (
	"bytes"
	"context"
	"io"
	"log"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

var testEpoch = time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// syncBuffer is a log sink safe to read while goroutines write to it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Count(substr string) int {
	return strings.Count(b.String(), substr)
}

func newTestModel(t *testing.T) (*UIModel, chan string) {
	t.Helper()
	logChan := make(chan string, 16)
	model := NewUIModel(discardLogger(), logChan)
	t.Cleanup(model.Shutdown)
	return model, logChan
}

func newTestSession(t *testing.T) (*Session, *UIModel, *clock.Manual) {
	t.Helper()
	model, _ := newTestModel(t)
	clk := clock.NewManual(testEpoch)
	session, err := NewSession(model, clk, "squat", discardLogger())
	require.NoError(t, err)
	return session, model, clk
}

// kneePose returns a confident pose with both knees bent to deg
func kneePose(deg float64) pose.Pose {
	var p pose.Pose
	for i := range p {
		p[i].Score = 0.9
	}
	rad := deg * math.Pi / 180
	for _, side := range [][3]int{
		{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
		{pose.RightHip, pose.RightKnee, pose.RightAnkle},
	} {
		p[side[1]] = pose.Keypoint{X: 320, Y: 240, Score: 0.9}
		p[side[0]] = pose.Keypoint{X: 320, Y: 140, Score: 0.9}
		p[side[2]] = pose.Keypoint{X: 320 + 100*math.Sin(rad), Y: 240 - 100*math.Cos(rad), Score: 0.9}
	}
	return p
}

// squatRep is one full squat: standing, deep, standing
func squatRep() [][]pose.Pose {
	return [][]pose.Pose{{kneePose(170)}, {kneePose(90)}, {kneePose(170)}}
}

type providerResult struct {
	poses []pose.Pose
	err   error
	panic any
}

// fakeProvider replays scripted results, then keeps returning no poses
type fakeProvider struct {
	mu      sync.Mutex
	results []providerResult
	calls   int
}

func (p *fakeProvider) EstimatePoses(ctx context.Context) ([]pose.Pose, error) {
	p.mu.Lock()
	p.calls++
	if len(p.results) == 0 {
		p.mu.Unlock()
		return nil, nil
	}
	r := p.results[0]
	p.results = p.results[1:]
	p.mu.Unlock()

	if r.panic != nil {
		panic(r.panic)
	}
	return r.poses, r.err
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
