package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override the file configuration.
const (
	EnvGravity         = "ORBITER_GRAVITY"
	EnvTickRate        = "ORBITER_TICK_RATE"
	EnvForecastHorizon = "ORBITER_FORECAST_HORIZON"
	EnvHistoryLength   = "ORBITER_HISTORY_LENGTH"
	EnvHomeBody        = "ORBITER_HOME_BODY"
	EnvAudio           = "ORBITER_AUDIO"
)

// ApplyEnv overrides configuration values from the environment. Unset
// variables leave the current value alone.
func (c *GameConfig) ApplyEnv() error {
	if err := envFloat(EnvGravity, &c.Physics.Gravity); err != nil {
		return err
	}
	if err := envInt(EnvTickRate, &c.Window.TickRate); err != nil {
		return err
	}
	if err := envInt(EnvForecastHorizon, &c.Physics.ForecastHorizon); err != nil {
		return err
	}
	if err := envInt(EnvHistoryLength, &c.Physics.HistoryLength); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvHomeBody); ok && v != "" {
		c.Probe.HomeBody = v
	}
	return envBool(EnvAudio, &c.Audio.Enabled)
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}
