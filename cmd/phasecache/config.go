package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	algophase "github.com/cwbudde/algo-phase"
	"github.com/cwbudde/algo-phase/engine"
)

const envPrefix = "PHASECACHE"

var errBadDims = errors.New("dims must be four comma-separated integers x,y,z,t")

type config struct {
	Lattice   algophase.Dims
	Grid      algophase.Dims
	Rank      int
	Backend   string
	Workers   int
	Mom2Max   int
	Mom2Min   int
	Codec     string
	Out       string
	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lattice", "8,8,8,8")
	v.SetDefault("grid", "1,1,1,1")
	v.SetDefault("rank", 0)
	v.SetDefault("backend", "auto")
	v.SetDefault("workers", 0)
	v.SetDefault("mom2-max", 3)
	v.SetDefault("mom2-min", 0)
	v.SetDefault("codec", "zstd")
	v.SetDefault("out", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
}

// loadConfig layers flags over environment over the optional config file
// over defaults.
func loadConfig(v *viper.Viper, cmd *cobra.Command, path string) (config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}

	var (
		cfg config
		err error
	)

	if cfg.Lattice, err = parseDims(v.GetString("lattice")); err != nil {
		return config{}, fmt.Errorf("lattice: %w", err)
	}
	if cfg.Grid, err = parseDims(v.GetString("grid")); err != nil {
		return config{}, fmt.Errorf("grid: %w", err)
	}

	cfg.Rank = v.GetInt("rank")
	cfg.Backend = v.GetString("backend")
	cfg.Workers = v.GetInt("workers")
	cfg.Mom2Max = v.GetInt("mom2-max")
	cfg.Mom2Min = v.GetInt("mom2-min")
	cfg.Codec = v.GetString("codec")
	cfg.Out = v.GetString("out")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = v.GetString("log-format")

	return cfg, nil
}

// parseDims parses "x,y,z,t".
func parseDims(s string) (algophase.Dims, error) {
	var d algophase.Dims

	parts := strings.Split(s, ",")
	if len(parts) != len(d) {
		return d, fmt.Errorf("%w: %q", errBadDims, s)
	}

	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return d, fmt.Errorf("%w: %q", errBadDims, s)
		}
		d[i] = n
	}

	return d, nil
}

func newLogger(w io.Writer, level, format string) (*algophase.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(format) {
	case "", "text":
		return algophase.NewTextLogger(w, lvl), nil
	case "json":
		return algophase.NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// openPhase builds the phase cache of cfg.Rank on the configured backend.
func openPhase(cfg config, logger *algophase.Logger) (*algophase.Phase, error) {
	backend, err := engine.ByName(cfg.Backend, cfg.Workers)
	if err != nil {
		return nil, err
	}

	topo, err := algophase.NewCartesianTopology(cfg.Grid, cfg.Rank)
	if err != nil {
		return nil, err
	}

	return algophase.NewPhaseFromTopology(cfg.Lattice, topo,
		algophase.WithBackend(backend),
		algophase.WithWorkers(cfg.Workers),
		algophase.WithLogger(logger),
	)
}
