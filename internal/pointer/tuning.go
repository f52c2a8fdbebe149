package pointer

import (
	"errors"
	"time"
)

// Tuning holds the empirically chosen constants of the recognizers.
type Tuning struct {
	ClickTimeout        time.Duration `mapstructure:"click_timeout" yaml:"click_timeout"`
	DblClickWindow      time.Duration `mapstructure:"dblclick_window" yaml:"dblclick_window"`
	DblClickRadius      float64       `mapstructure:"dblclick_radius" yaml:"dblclick_radius"`
	LongDelay           time.Duration `mapstructure:"long_delay" yaml:"long_delay"`
	LongSlop            float64       `mapstructure:"long_slop" yaml:"long_slop"`
	LongSuppress        time.Duration `mapstructure:"long_suppress" yaml:"long_suppress"`
	CornerTolerance     float64       `mapstructure:"corner_tolerance" yaml:"corner_tolerance"`
	GestureThreshold    float64       `mapstructure:"gesture_threshold" yaml:"gesture_threshold"`
	GestureTravel       float64       `mapstructure:"gesture_travel" yaml:"gesture_travel"`
	GestureWheelDamping float64       `mapstructure:"gesture_wheel_damping" yaml:"gesture_wheel_damping"`
	GestureWheelIdle    time.Duration `mapstructure:"gesture_wheel_idle" yaml:"gesture_wheel_idle"`
	GestureWheelLinger  time.Duration `mapstructure:"gesture_wheel_linger" yaml:"gesture_wheel_linger"`
	WheelZoomThreshold  float64       `mapstructure:"wheel_zoom_threshold" yaml:"wheel_zoom_threshold"`
	WheelZoomFine       float64       `mapstructure:"wheel_zoom_fine" yaml:"wheel_zoom_fine"`
	WheelZoomCoarse     float64       `mapstructure:"wheel_zoom_coarse" yaml:"wheel_zoom_coarse"`
	MenuReleaseDelay    time.Duration `mapstructure:"menu_release_delay" yaml:"menu_release_delay"`
	TouchMouseWindow    time.Duration `mapstructure:"touch_mouse_window" yaml:"touch_mouse_window"`
	IndicatorSize       float64       `mapstructure:"indicator_size" yaml:"indicator_size"`
}

// DefaultTuning returns the stock values.
func DefaultTuning() Tuning {
	return Tuning{
		ClickTimeout:        250 * time.Millisecond,
		DblClickWindow:      300 * time.Millisecond,
		DblClickRadius:      10,
		LongDelay:           300 * time.Millisecond,
		LongSlop:            1,
		LongSuppress:        5 * time.Millisecond,
		CornerTolerance:     20,
		GestureThreshold:    90,
		GestureTravel:       1.5,
		GestureWheelDamping: 1.38,
		GestureWheelIdle:    250 * time.Millisecond,
		GestureWheelLinger:  500 * time.Millisecond,
		WheelZoomThreshold:  50,
		WheelZoomFine:       0.003,
		WheelZoomCoarse:     0.0015,
		MenuReleaseDelay:    34 * time.Millisecond,
		TouchMouseWindow:    60 * time.Second,
		IndicatorSize:       20,
	}
}

// Validate rejects values that would break the recognizers.
func (t Tuning) Validate() error {
	switch {
	case t.ClickTimeout <= 0:
		return errors.New("click_timeout must be > 0")
	case t.DblClickWindow <= 0:
		return errors.New("dblclick_window must be > 0")
	case t.DblClickRadius <= 0:
		return errors.New("dblclick_radius must be > 0")
	case t.LongDelay <= 0:
		return errors.New("long_delay must be > 0")
	case t.LongSlop < 0:
		return errors.New("long_slop must be >= 0")
	case t.CornerTolerance < 0:
		return errors.New("corner_tolerance must be >= 0")
	case t.GestureThreshold <= 0:
		return errors.New("gesture_threshold must be > 0")
	case t.GestureTravel <= 0:
		return errors.New("gesture_travel must be > 0")
	case t.GestureWheelDamping <= 0:
		return errors.New("gesture_wheel_damping must be > 0")
	case t.GestureWheelIdle <= 0:
		return errors.New("gesture_wheel_idle must be > 0")
	case t.WheelZoomThreshold < 0 || t.WheelZoomFine <= 0 || t.WheelZoomCoarse <= 0:
		return errors.New("wheel zoom values must be positive")
	case t.IndicatorSize <= 0:
		return errors.New("indicator_size must be > 0")
	}
	return nil
}
