package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thermonet/config"
	"thermonet/hydraulics"
	"thermonet/logger"
	"thermonet/logger/console"
	"thermonet/network"
	"thermonet/recorder"
	"thermonet/thermal"
	"thermonet/weather"
)

/*
Runs a thermal simulation and saves its results.

	Args:
		ctx: cancelled between time steps on interrupt
		cfg: validated run configuration
*/
func run(ctx context.Context, cfg config.Config) error {
	logger.Info("loading network", "path", cfg.NetworkPath)
	m, err := network.LoadFile(cfg.NetworkPath)
	if err != nil {
		return err
	}

	if cfg.Mesh {
		if cfg.MaxPipeLength > 0 {
			maxLength := cfg.MaxPipeLength
			m.Options.Thermal.MaxPipeLength = &maxLength
		}
		if m, err = network.Meshnet(m); err != nil {
			return err
		}
	}

	logger.Info("loading hydraulic results", "links", cfg.LinksPath, "nodes", cfg.NodesPath)
	hyd, err := hydraulics.LoadFiles(cfg.LinksPath, cfg.NodesPath)
	if err != nil {
		return err
	}

	var w thermal.Weather
	if cfg.WeatherPath != "" {
		logger.Info("loading weather", "path", cfg.WeatherPath)
		ww, err := weather.LoadFile(cfg.WeatherPath, cfg.ProbeDepth)
		if err != nil {
			return err
		}
		logger.Debug("weather loaded", "samples", ww.Len(), "mean_air_temperature", ww.AverageAirTemperature())
		w = ww
	}

	opts := thermal.OptionsFrom(m)
	opts.Workers = cfg.Workers
	opts.IncludeLeakDemand = opts.IncludeLeakDemand || cfg.IncludeLeakDemand

	sim, err := thermal.NewSimulator(m, hyd, w, opts)
	if err != nil {
		return err
	}
	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	rec := recorder.New(cfg.OutputDir, res, cfg.PlotNodes)
	logger.Info("saving results", "dir", cfg.OutputDir, "run_id", rec.RunID)
	return rec.Save(ctx)
}

func main() {
	config.LoadEnv()

	cfg := config.Default()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		os.Exit(2)
	}

	logger.Init(console.New(console.Options{Level: cfg.LogLevel}))
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := run(ctx, cfg); err != nil {
		logger.Fatal("thermonet failed", "err", err)
	}
	logger.Info("finished", "elapsed", time.Since(start))
}
