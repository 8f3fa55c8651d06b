package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"gopkg.in/yaml.v2"
)

// PantryTuning holds the knobs product may want to calibrate without a
// release.
type PantryTuning struct {
	PantryCutoff     float64 `yaml:"pantry_cutoff"`
	InStockThreshold float64 `yaml:"in_stock_threshold"`
	ExpiryWindowDays int     `yaml:"expiry_window_days"`
	RateLimitPerHour int     `yaml:"rate_limit_per_hour"`
	LockTTLSeconds   int     `yaml:"lock_ttl_seconds"`
}

func DefaultPantryTuning() PantryTuning {
	th := pantry.DefaultThresholds()
	return PantryTuning{
		PantryCutoff:     th.PantryCutoff,
		InStockThreshold: th.InStock,
		ExpiryWindowDays: th.ExpiryWindowDays,
		RateLimitPerHour: 120,
		LockTTLSeconds:   10,
	}
}

// LoadPantryTuning reads path over the defaults. An empty path or a
// missing file yields the defaults.
func LoadPantryTuning(path string) (PantryTuning, error) {
	tuning := DefaultPantryTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Pantry tuning file %s not found, using defaults", path)
		return tuning, nil
	}
	if err != nil {
		return tuning, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := tuning.Validate(); err != nil {
		return tuning, err
	}
	return tuning, nil
}

func (p PantryTuning) Thresholds() pantry.Thresholds {
	return pantry.Thresholds{
		PantryCutoff:     p.PantryCutoff,
		InStock:          p.InStockThreshold,
		ExpiryWindowDays: p.ExpiryWindowDays,
	}
}

func (p PantryTuning) LockTTL() time.Duration {
	return time.Duration(p.LockTTLSeconds) * time.Second
}

func (p PantryTuning) Validate() error {
	if err := p.Thresholds().Validate(); err != nil {
		return err
	}
	if p.RateLimitPerHour <= 0 {
		return ValidationError{Field: "rate_limit_per_hour", Message: "must be positive"}
	}
	if p.LockTTLSeconds <= 0 {
		return ValidationError{Field: "lock_ttl_seconds", Message: "must be positive"}
	}
	return nil
}
