package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors          = 11
	Capacity           = 5
	MaxWaitingPerFloor = 5
)

// Config holds the tunable timings of a simulation run.
type Config struct {
	TickInterval      time.Duration `yaml:"TickInterval"`
	MoveStartDelay    time.Duration `yaml:"MoveStartDelay"`
	ExitWindow        time.Duration `yaml:"ExitWindow"`
	EntryWindow       time.Duration `yaml:"EntryWindow"`
	IdleTimeout       time.Duration `yaml:"IdleTimeout"`
	AckPollInterval   time.Duration `yaml:"AckPollInterval"`
	AnimationDuration time.Duration `yaml:"AnimationDuration"`
	Seed              uint64        `yaml:"Seed"`
}

func Default() Config {
	return Config{
		TickInterval:      1 * time.Second,
		MoveStartDelay:    500 * time.Millisecond,
		ExitWindow:        4 * time.Second,
		EntryWindow:       1 * time.Second,
		IdleTimeout:       10 * time.Second,
		AckPollInterval:   50 * time.Millisecond,
		AnimationDuration: 600 * time.Millisecond,
		Seed:              uint64(time.Now().UnixNano()),
	}
}

// Load decodes a YAML timing file on top of the defaults. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, c.Validate()
}

// ApplyEnv overrides fields from a .env file, e.g. ELEVSIM_SEED=42 or ELEVSIM_TICK_INTERVAL=250ms.
func ApplyEnv(c *Config, path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	durations := map[string]*time.Duration{
		"ELEVSIM_TICK_INTERVAL":      &c.TickInterval,
		"ELEVSIM_MOVE_START_DELAY":   &c.MoveStartDelay,
		"ELEVSIM_EXIT_WINDOW":        &c.ExitWindow,
		"ELEVSIM_ENTRY_WINDOW":       &c.EntryWindow,
		"ELEVSIM_IDLE_TIMEOUT":       &c.IdleTimeout,
		"ELEVSIM_ACK_POLL_INTERVAL":  &c.AckPollInterval,
		"ELEVSIM_ANIMATION_DURATION": &c.AnimationDuration,
	}
	for key, field := range durations {
		raw, ok := env[key]
		if !ok {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*field = d
	}

	if raw, ok := env["ELEVSIM_SEED"]; ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("config: ELEVSIM_SEED: %w", err)
		}
		c.Seed = seed
	}
	return c.Validate()
}

func (c Config) Validate() error {
	checks := []struct {
		name string
		d    time.Duration
	}{
		{"TickInterval", c.TickInterval},
		{"MoveStartDelay", c.MoveStartDelay},
		{"ExitWindow", c.ExitWindow},
		{"EntryWindow", c.EntryWindow},
		{"IdleTimeout", c.IdleTimeout},
		{"AckPollInterval", c.AckPollInterval},
	}
	for _, check := range checks {
		if check.d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", check.name, check.d)
		}
	}
	if c.AnimationDuration < 0 {
		return fmt.Errorf("config: AnimationDuration must not be negative, got %v", c.AnimationDuration)
	}
	return nil
}

func ValidFloor(floor int) bool {
	return floor >= 0 && floor < NumFloors
}
