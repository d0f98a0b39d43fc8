// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for simulation and demo-binary
// settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/archanox/gunrpg/internal/combat"
	"github.com/archanox/gunrpg/internal/pet"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimulationConfig holds the handful of knobs that make a Combat run
// reproducible and observable (spec §6, "seed" and "verbose_shot_logs").
type SimulationConfig struct {
	Seed              int64
	VerboseShotLogs   bool
	ShotLogRatePerSec float64
	ShotLogBurst      int
}

// DefaultSimulation returns the default simulation configuration.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Seed:              42,
		VerboseShotLogs:   false,
		ShotLogRatePerSec: 20,
		ShotLogBurst:      5,
	}
}

// SimulationFromEnv returns simulation configuration with environment
// variable overrides. Environment variables take precedence over
// defaults. Library callers never touch this — they pass a seed and a
// *combat.Telemetry directly; this path exists for cmd/gunrpg-demo only.
func SimulationFromEnv() SimulationConfig {
	cfg := DefaultSimulation()

	cfg.Seed = getEnvInt64("GUNRPG_SEED", cfg.Seed)
	if os.Getenv("GUNRPG_VERBOSE_SHOT_LOGS") == "true" {
		cfg.VerboseShotLogs = true
	}
	if r := getEnvFloat("GUNRPG_SHOT_LOG_RATE", 0); r > 0 {
		cfg.ShotLogRatePerSec = r
	}
	if b := getEnvInt("GUNRPG_SHOT_LOG_BURST", 0); b > 0 {
		cfg.ShotLogBurst = b
	}

	return cfg
}

// =============================================================================
// WEAPON CONFIGURATION
// =============================================================================

// WeaponsConfig points at an optional external weapon balance table
// (spec §1, "weapon balance tables ... treated as configuration the core
// consumes"). An empty Path means fall back to combat.DefaultWeapons().
type WeaponsConfig struct {
	Path string
}

// WeaponsFromEnv returns the weapon table location, if overridden.
func WeaponsFromEnv() WeaponsConfig {
	return WeaponsConfig{Path: os.Getenv("GUNRPG_WEAPONS_PATH")}
}

// =============================================================================
// PET DECAY CONFIGURATION
// =============================================================================

// PetFromEnv returns pet.DefaultRules() with any environment overrides
// applied (spec §4.9: "all tunable, but the defaults ... are the
// reference values").
func PetFromEnv() pet.Rules {
	r := pet.DefaultRules()

	if v := getEnvFloat("GUNRPG_PET_HUNGER_PER_HOUR", -1); v >= 0 {
		r.HungerPerHour = v
	}
	if v := getEnvFloat("GUNRPG_PET_HYDRATION_PER_HOUR", -1); v >= 0 {
		r.HydrationPerHour = v
	}
	if v := getEnvFloat("GUNRPG_PET_FATIGUE_PER_HOUR", -1); v >= 0 {
		r.FatiguePerHour = v
	}
	if v := getEnvFloat("GUNRPG_PET_STRESS_PER_HOUR", -1); v >= 0 {
		r.StressPerHour = v
	}
	if v := getEnvFloat("GUNRPG_PET_STRESS_THRESHOLD", -1); v >= 0 {
		r.StressThreshold = v
	}

	return r
}

// =============================================================================
// COMBAT CONSTANTS CONFIGURATION
// =============================================================================

// CombatFromEnv returns combat.DefaultConstants() with any environment
// overrides applied (spec §6: "suppression/cover constants — all
// tunable, but the defaults ... are the reference values").
func CombatFromEnv() combat.Constants {
	c := combat.DefaultConstants()

	if v := getEnvFloat("GUNRPG_SUPPRESSION_THRESHOLD", -1); v >= 0 {
		c.SuppressionThreshold = float32(v)
	}
	if v := getEnvDurationMs("GUNRPG_CONTINUED_FIRE_WINDOW_MS", 0); v > 0 {
		c.ContinuedFireWindowMs = v
	}
	if v := getEnvDurationMs("GUNRPG_COVER_NONE_PARTIAL_MS", 0); v > 0 {
		c.CoverNonePartialMs = v
	}
	if v := getEnvDurationMs("GUNRPG_MOVEMENT_INTERVAL_MS", 0); v > 0 {
		c.MovementIntervalMs = v
	}

	return c
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete cmd/gunrpg-demo configuration. Library
// callers (anything importing internal/combat or internal/aggregate
// directly) construct combat.Constants, pet.Rules, and a seed themselves
// and never see this type.
type AppConfig struct {
	Simulation SimulationConfig
	Weapons    WeaponsConfig
	Pet        pet.Rules
	Combat     combat.Constants
}

// Load bootstraps a .env file if present (grounded on the teacher's own
// cmd/server/main.go, which calls godotenv.Load() before reading any
// environment variable — a missing .env is not an error, since production
// deployments set real environment variables instead) and returns the
// complete configuration with environment overrides applied.
func Load() AppConfig {
	_ = godotenv.Load()

	return AppConfig{
		Simulation: SimulationFromEnv(),
		Weapons:    WeaponsFromEnv(),
		Pet:        PetFromEnv(),
		Combat:     CombatFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultVal uint64) uint64 {
	d := getEnvDuration(key, 0)
	if d <= 0 {
		return defaultVal
	}
	return uint64(d.Milliseconds())
}
