package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

// ErrPoseProvider wraps any failure of the pose source
var ErrPoseProvider = errors.New("pose provider failed")

// PoseProvider produces the poses detected in the latest camera frame.
// Zero poses means no new information.
type PoseProvider interface {
	EstimatePoses(ctx context.Context) ([]pose.Pose, error)
}

// ProcessingLoop polls the provider at the pose rate and feeds the session.
// Calls never overlap: a slow provider simply lowers the effective rate.
type ProcessingLoop struct {
	provider PoseProvider
	session  *Session
	period   time.Duration
	logger   *log.Logger

	consecutiveErrors int

	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
}

func NewProcessingLoop(provider PoseProvider, session *Session, poseRateHz float64, logger *log.Logger) *ProcessingLoop {
	if provider == nil {
		panic("ProcessingLoop: provider cannot be nil")
	}
	if session == nil {
		panic("ProcessingLoop: session cannot be nil")
	}
	if logger == nil {
		panic("ProcessingLoop: logger cannot be nil")
	}
	if poseRateHz <= 0 {
		poseRateHz = DefaultPoseRateHz
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ProcessingLoop{
		provider: provider,
		session:  session,
		period:   time.Duration(float64(time.Second) / poseRateHz),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the loop on its own goroutine until Shutdown
func (l *ProcessingLoop) Start() {
	l.startOnce.Do(func() {
		l.logger.Printf("ProcessingLoop: Starting at %v per frame", l.period)
		l.wg.Add(1)
		go_func_utils.SafeGo(l.logger, func() { l.run() })
	})
}

func (l *ProcessingLoop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			l.logger.Printf("ProcessingLoop: Goroutine exiting")
			return
		case <-ticker.C:
			l.Step(l.ctx)
		}
	}
}

// Step performs one provider call and applies the result. A failed call is
// logged and the cycle skipped.
func (l *ProcessingLoop) Step(ctx context.Context) error {
	var poses []pose.Pose
	err := go_func_utils.Recover(l.logger, "pose provider", func() error {
		var err error
		poses, err = l.provider.EstimatePoses(ctx)
		return err
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPoseProvider, err)
		if ctx.Err() == nil && l.consecutiveErrors%providerErrorLogEvery == 0 {
			l.logger.Printf("ProcessingLoop: %v (failure %d)", err, l.consecutiveErrors+1)
		}
		l.consecutiveErrors++
		return err
	}

	if l.consecutiveErrors > 0 {
		l.logger.Printf("ProcessingLoop: Provider recovered after %d failures", l.consecutiveErrors)
		l.consecutiveErrors = 0
	}
	l.session.ProcessPoses(poses)
	return nil
}

// Shutdown stops the loop and waits for the goroutine to exit.
// Safe to call multiple times.
func (l *ProcessingLoop) Shutdown() {
	l.shutdownOnce.Do(func() {
		l.logger.Printf("ProcessingLoop: Shutting down")
		l.cancel()
		l.wg.Wait()
		l.logger.Printf("ProcessingLoop: Shutdown complete")
	})
}
