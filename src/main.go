package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"elevsim/src/config"
	"elevsim/src/console"
	"elevsim/src/dispatcher"
	"elevsim/src/logger"
)

func main() {
	configPath := flag.String("config", "", "YAML file with simulation timings")
	envPath := flag.String("env", "", ".env file with ELEVSIM_* overrides")
	seed := flag.Uint64("seed", 0, "Seed for waiting passengers, 0 keeps the configured one")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logDir := flag.String("log-dir", ".", "Directory for the run log file")
	verbose := flag.Bool("verbose", false, "Also print log lines to stderr")
	flag.Parse()

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	var echo io.Writer
	if *verbose {
		echo = os.Stderr
	}
	runID := logger.NewRunID()
	closeLog, err := logger.Init(runID, *logDir, level, echo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	slog.Info("Configuration loaded", "config", cfg)

	display := console.NewDisplay(os.Stdout, cfg.AnimationDuration)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	runner := dispatcher.NewRunner(cfg, rng, slog.Default(), display)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	inputCh := make(chan console.Input, 8)
	keysDone := make(chan struct{})
	go func() {
		defer close(keysDone)
		if err := console.PollKeys(inputCh); err != nil {
			slog.Error("Keyboard input stopped", "error", err)
			cancel()
		}
	}()

	if err := console.Run(ctx, runner, display, inputCh); err != nil {
		slog.Error("Console stopped", "error", err)
	}
	cancel()
	<-runner.Done()

	// Give the keyboard reader the chance to restore the terminal.
	select {
	case <-keysDone:
	case <-time.After(time.Second):
	}
}

func loadConfig(configPath, envPath string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if envPath != "" {
		if err := config.ApplyEnv(&cfg, envPath); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
