package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. POSE_TRAINER_PROVIDER_KIND
const EnvPrefix = "POSE_TRAINER"

// Provider kinds
const (
	ProviderReplay    = "replay"
	ProviderMQTT      = "mqtt"
	ProviderWebSocket = "websocket"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Loop     LoopConfig     `mapstructure:"loop"`
	Exercise ExerciseConfig `mapstructure:"exercise"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProviderConfig selects and configures the pose source
type ProviderConfig struct {
	Kind      string          `mapstructure:"kind"`
	Replay    ReplayConfig    `mapstructure:"replay"`
	MQTT      MQTTConfig      `mapstructure:"mqtt"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

type ReplayConfig struct {
	Path string `mapstructure:"path"`
	Loop bool   `mapstructure:"loop"`
}

type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

type WebSocketConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoopConfig holds the two frame rates
type LoopConfig struct {
	PoseRateHz    float64 `mapstructure:"pose_rate_hz"`
	DisplayRateHz float64 `mapstructure:"display_rate_hz"`
}

type ExerciseConfig struct {
	Default string `mapstructure:"default"`
}

type UIConfig struct {
	Headless bool `mapstructure:"headless"`
}

// LogConfig configures the rotating log file
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.kind", ProviderReplay)
	v.SetDefault("provider.replay.path", "")
	v.SetDefault("provider.replay.loop", true)
	v.SetDefault("provider.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("provider.mqtt.client_id", "pose-trainer")
	v.SetDefault("provider.mqtt.topic", "pose/frames")
	v.SetDefault("provider.websocket.addr", ":8080")
	v.SetDefault("loop.pose_rate_hz", 10.0)
	v.SetDefault("loop.display_rate_hz", 30.0)
	v.SetDefault("exercise.default", "squat")
	v.SetDefault("ui.headless", false)
	v.SetDefault("log.file", "pose_trainer.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// newFlagSet declares the command-line overrides. Flag names match config keys.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pose_trainer", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (toml, yaml or json)")
	fs.String("provider.kind", ProviderReplay, "pose source: replay, mqtt or websocket")
	fs.String("provider.replay.path", "", "JSON-lines pose recording to replay")
	fs.Bool("provider.replay.loop", true, "restart the recording when it ends")
	fs.String("provider.mqtt.broker", "tcp://localhost:1883", "MQTT broker URL")
	fs.String("provider.mqtt.topic", "pose/frames", "MQTT topic carrying pose frames")
	fs.String("provider.websocket.addr", ":8080", "listen address for the pose WebSocket")
	fs.Float64("loop.pose_rate_hz", 10, "pose processing rate")
	fs.Float64("loop.display_rate_hz", 30, "display refresh rate")
	fs.String("exercise.default", "squat", "exercise active on startup")
	fs.Bool("ui.headless", false, "log state changes instead of drawing the terminal UI")
	fs.String("log.file", "pose_trainer.log", "rotating log file path")
	return fs
}

// Load resolves configuration from defaults, an optional config file, the
// environment and finally the command-line args (without the program name).
func Load(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// only flags set explicitly override lower layers
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return Config{}, fmt.Errorf("bind flags: %w", bindErr)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate rejects configurations the application cannot start with
func (c Config) Validate() error {
	var errs []error

	switch c.Provider.Kind {
	case ProviderReplay:
		if c.Provider.Replay.Path == "" {
			errs = append(errs, errors.New("provider.replay.path is required for the replay provider"))
		}
	case ProviderMQTT:
		if c.Provider.MQTT.Broker == "" || c.Provider.MQTT.Topic == "" {
			errs = append(errs, errors.New("provider.mqtt.broker and provider.mqtt.topic are required"))
		}
	case ProviderWebSocket:
		if c.Provider.WebSocket.Addr == "" {
			errs = append(errs, errors.New("provider.websocket.addr is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider.kind %q", c.Provider.Kind))
	}

	if c.Loop.PoseRateHz <= 0 {
		errs = append(errs, fmt.Errorf("loop.pose_rate_hz must be positive, got %v", c.Loop.PoseRateHz))
	}
	if c.Loop.DisplayRateHz <= 0 {
		errs = append(errs, fmt.Errorf("loop.display_rate_hz must be positive, got %v", c.Loop.DisplayRateHz))
	}
	if c.Exercise.Default == "" {
		errs = append(errs, errors.New("exercise.default is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
