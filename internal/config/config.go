// Package config loads runtime configuration for pointerd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/frudas24/pointerkit/internal/logging"
	"github.com/frudas24/pointerkit/internal/pointer"
)

const (
	envPrefix           = "POINTERKIT"
	defaultListenAddr   = "0.0.0.0:8787"
	defaultDataDir      = "./data"
	defaultLayoutFile   = "layout.yaml"
	defaultConfigName   = "pointerkit"
	defaultViewerPolicy = PolicyReject
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

// Viewer policies for the signaling server.
const (
	PolicyReject  = "reject"
	PolicyReplace = "replace"
)

// Logging selects the log level and output format.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds runtime configuration values.
type Config struct {
	ListenAddr   string         `mapstructure:"listen_addr"`
	UIPassword   string         `mapstructure:"ui_password"`
	DataDir      string         `mapstructure:"data_dir"`
	LayoutPath   string         `mapstructure:"layout_path"`
	ViewerPolicy string         `mapstructure:"viewer_policy"`
	ICEServers   []string       `mapstructure:"ice_servers"`
	Logging      Logging        `mapstructure:"logging"`
	Tuning       pointer.Tuning `mapstructure:"tuning"`
}

// Log returns the logger configuration.
func (c Config) Log() (logging.Config, error) {
	return logging.Parse(c.Logging.Level, c.Logging.Format)
}

// Load reads ./data/.env, an optional YAML config file and POINTERKIT_*
// environment variables, in increasing precedence. configFile may be empty,
// in which case <data_dir>/pointerkit.yaml is used when it exists.
func Load(configFile string) (Config, error) {
	if err := loadEnvFile(filepath.Join(defaultDataDir, ".env")); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing .env files.
	for key, legacy := range map[string]string{
		"listen_addr":   "LISTEN_ADDR",
		"ui_password":   "UI_PASSWORD",
		"data_dir":      "DATA_DIR",
		"layout_path":   "LAYOUT_PATH",
		"logging.level": "LOG_LEVEL",
	} {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", legacy, err)
		}
	}

	if err := readConfigFile(v, configFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.UIPassword = strings.TrimSpace(cfg.UIPassword)
	cfg.ViewerPolicy = strings.ToLower(strings.TrimSpace(cfg.ViewerPolicy))
	if cfg.LayoutPath == "" {
		cfg.LayoutPath = filepath.Join(cfg.DataDir, defaultLayoutFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.UIPassword == "" {
		return errors.New("UI_PASSWORD is required")
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	switch c.ViewerPolicy {
	case PolicyReject, PolicyReplace:
	default:
		return fmt.Errorf("viewer_policy must be %q or %q", PolicyReject, PolicyReplace)
	}
	if _, err := c.Log(); err != nil {
		return err
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

// setDefaults registers every key so env overrides and Unmarshal see it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", defaultListenAddr)
	v.SetDefault("ui_password", "")
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("layout_path", "")
	v.SetDefault("viewer_policy", defaultViewerPolicy)
	v.SetDefault("ice_servers", []string{})
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)

	t := pointer.DefaultTuning()
	v.SetDefault("tuning.click_timeout", t.ClickTimeout)
	v.SetDefault("tuning.dblclick_window", t.DblClickWindow)
	v.SetDefault("tuning.dblclick_radius", t.DblClickRadius)
	v.SetDefault("tuning.long_delay", t.LongDelay)
	v.SetDefault("tuning.long_slop", t.LongSlop)
	v.SetDefault("tuning.long_suppress", t.LongSuppress)
	v.SetDefault("tuning.corner_tolerance", t.CornerTolerance)
	v.SetDefault("tuning.gesture_threshold", t.GestureThreshold)
	v.SetDefault("tuning.gesture_travel", t.GestureTravel)
	v.SetDefault("tuning.gesture_wheel_damping", t.GestureWheelDamping)
	v.SetDefault("tuning.gesture_wheel_idle", t.GestureWheelIdle)
	v.SetDefault("tuning.gesture_wheel_linger", t.GestureWheelLinger)
	v.SetDefault("tuning.wheel_zoom_threshold", t.WheelZoomThreshold)
	v.SetDefault("tuning.wheel_zoom_fine", t.WheelZoomFine)
	v.SetDefault("tuning.wheel_zoom_coarse", t.WheelZoomCoarse)
	v.SetDefault("tuning.menu_release_delay", t.MenuReleaseDelay)
	v.SetDefault("tuning.touch_mouse_window", t.TouchMouseWindow)
	v.SetDefault("tuning.indicator_size", t.IndicatorSize)
}

// readConfigFile reads an explicit config file, or the optional default one.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", configFile, err)
		}
		return nil
	}
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// loadEnvFile copies KEY=VALUE pairs from a .env file into the process
// environment. Variables that are already set win.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
