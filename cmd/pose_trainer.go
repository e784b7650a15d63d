package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rivo/tview"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/clock"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/config"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/provider"
	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/trainer"
)

// closer releases a provider's connections on shutdown
type closer func()

func main() {
	cfg, err := config.Load(os.Args[1:])
	must("load config", err)
	must("validate config", cfg.Validate())

	logFile := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer logFile.Close()

	uiLogChan := make(chan string, 100)
	writers := []io.Writer{logFile}
	if cfg.UI.Headless {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, trainer.NewUILogWriter(uiLogChan))
	}
	logger := log.New(io.MultiWriter(writers...), "", log.LstdFlags)
	logger.Printf("Starting pose trainer (provider=%s)", cfg.Provider.Kind)

	model := trainer.NewUIModel(logger, uiLogChan)

	session, err := trainer.NewSession(model, clock.System{}, cfg.Exercise.Default, logger)
	must("create session", err)

	poseProvider, closeProvider, err := newPoseProvider(cfg, model, logger)
	must("start pose provider", err)

	loop := trainer.NewProcessingLoop(poseProvider, session, cfg.Loop.PoseRateHz, logger)
	controller := trainer.NewUIController(model, session, logger)

	var impl trainer.UIViewImpl
	if cfg.UI.Headless {
		impl = trainer.NewHeadlessUIView(logger)
	} else {
		impl = trainer.NewCursesUIView(logger, tview.NewApplication())
	}
	view := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:    impl,
		UIModel:       model,
		UIController:  controller,
		DisplayRateHz: cfg.Loop.DisplayRateHz,
		Logger:        logger,
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go_func_utils.SafeGo(logger, func() {
		if sig, ok := <-signals; ok {
			logger.Printf("Received %v, closing", sig)
			controller.OnEscapeKey()
		}
	})

	loop.Start()

	if err := view.Run(); err != nil {
		logger.Printf("UI exited with error: %v", err)
	}

	signal.Stop(signals)
	close(signals)

	// Producers stop before consumers
	loop.Shutdown()
	closeProvider()
	view.Shutdown()
	controller.Shutdown()
	model.Shutdown()
	logger.Printf("Pose trainer stopped after %d frames", session.FramesProcessed())
}

// newPoseProvider builds the configured pose source and returns its cleanup
func newPoseProvider(cfg config.Config, model *trainer.UIModel, logger *log.Logger) (trainer.PoseProvider, closer, error) {
	switch cfg.Provider.Kind {
	case config.ProviderReplay:
		p, err := provider.OpenReplayProvider(cfg.Provider.Replay.Path, cfg.Provider.Replay.Loop, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Printf("Replaying %d frames from %s", p.Len(), cfg.Provider.Replay.Path)
		return p, func() {}, nil

	case config.ProviderMQTT:
		p := provider.NewMQTTProvider(provider.MQTTOptions{
			Broker:   cfg.Provider.MQTT.Broker,
			ClientID: cfg.Provider.MQTT.ClientID,
			Topic:    cfg.Provider.MQTT.Topic,
		}, logger)
		if err := p.Connect(); err != nil {
			return nil, nil, err
		}
		return p, func() {
			stats := p.Stats()
			logger.Printf("MQTT: %d frames received, %d rejected", stats.Received, stats.Rejected)
			p.Close()
		}, nil

	case config.ProviderWebSocket:
		p := provider.NewWebSocketProvider(cfg.Provider.WebSocket.Addr, logger)
		if err := p.Start(); err != nil {
			return nil, nil, err
		}

		// the connected page renders the same view as the terminal
		ctx, cancel := context.WithCancel(context.Background())
		views := make(chan trainer.View, 1)
		unregister := model.ListenToView(views)
		done := make(chan struct{})
		go_func_utils.SafeGo(logger, func() {
			defer close(done)
			defer unregister()
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-views:
					if !ok {
						return
					}
					p.Broadcast(v)
				}
			}
		})

		return p, func() {
			cancel()
			<-done
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			if err := p.Close(shutdownCtx); err != nil {
				logger.Printf("WebSocket: Close failed: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown provider.kind %q", config.ErrInvalidConfig, cfg.Provider.Kind)
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}
