package core

import "time"

// Config holds the acquisition settings
type Config struct {
	// SensorClockHz is the sensor master clock (XCK)
	SensorClockHz uint32

	// SampleRateHz is the ADC sample rate. One sample per pixel clock.
	SampleRateHz uint32

	// ByteTimeout bounds the wait for each command operand byte.
	// Zero checks once without waiting.
	ByteTimeout time.Duration

	// PollInterval is the sleep between availability checks while waiting
	PollInterval time.Duration
}

// DefaultConfig returns the configuration used on the device
func DefaultConfig() Config {
	return Config{
		SensorClockHz: SensorClockHz,
		SampleRateHz:  SensorClockHz,
		ByteTimeout:   time.Millisecond,
		PollInterval:  50 * time.Microsecond,
	}
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.SensorClockHz == 0 {
		cfg.SensorClockHz = SensorClockHz
	}
	if cfg.SampleRateHz == 0 {
		cfg.SampleRateHz = cfg.SensorClockHz
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 50 * time.Microsecond
	}
}
