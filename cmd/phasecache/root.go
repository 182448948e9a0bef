package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	algophase "github.com/cwbudde/algo-phase"
)

type app struct {
	configPath string
	cfg        config
	logger     *algophase.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "phasecache",
		Short:         "Momentum phase caches for checkerboarded 4D lattices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(viper.New(), cmd, a.configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("lattice", "8,8,8,8", "global lattice extents x,y,z,t")
	pf.String("grid", "1,1,1,1", "process grid x,y,z,t")
	pf.Int("rank", 0, "rank whose sub-lattice is built")
	pf.String("backend", "auto", "array engine: auto, cpu, parallel, cuda, opencl")
	pf.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	pf.Int("mom2-max", 3, "largest |p|² enumerated")
	pf.Int("mom2-min", 0, "smallest |p|² enumerated")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-format", "text", "text or json")

	root.AddCommand(
		newMomentaCmd(a),
		newBuildCmd(a),
		newInspectCmd(a),
		newBenchCmd(a),
	)

	return root
}
