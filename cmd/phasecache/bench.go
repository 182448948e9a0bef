package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	algophase "github.com/cwbudde/algo-phase"
	"github.com/cwbudde/algo-phase/engine"
	"github.com/cwbudde/algo-phase/internal/cpu"
)

type benchResult struct {
	backend string
	build   time.Duration
	nsPerOp float64
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		backends string
		iters    int
		warmup   int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time gradient construction and phase caching per backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg

			moms, err := algophase.EnumerateMomenta(cfg.Mom2Max, cfg.Mom2Min)
			if err != nil {
				return err
			}

			topo, err := algophase.NewCartesianTopology(cfg.Grid, cfg.Rank)
			if err != nil {
				return err
			}

			geom, err := algophase.GeometryFromGlobal(cfg.Lattice, topo)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cpu=%s local=%s momenta=%d iters=%d warmup=%d\n",
				cpu.DetectFeatures(), geom.Local, len(moms), iters, warmup)

			var results []benchResult
			for _, name := range strings.Split(backends, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}

				res, err := benchBackend(name, cfg.Workers, geom, moms, iters, warmup)
				if err != nil {
					a.logger.Warn("backend skipped", "backend", name, "error", err)
					continue
				}
				results = append(results, res)
			}

			sort.Slice(results, func(i, j int) bool {
				return results[i].nsPerOp < results[j].nsPerOp
			})

			fmt.Fprintf(w, "%10s  %14s  %14s\n", "backend", "build", "cache ns/op")
			for _, r := range results {
				fmt.Fprintf(w, "%10s  %14s  %14.1f\n", r.backend, r.build, r.nsPerOp)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&backends, "backends", "cpu,parallel", "comma-separated backends to compare")
	cmd.Flags().IntVar(&iters, "iters", 20, "benchmark iterations")
	cmd.Flags().IntVar(&warmup, "warmup", 2, "warmup iterations")

	return cmd
}

func benchBackend(name string, workers int, geom algophase.Geometry, moms []algophase.Momentum, iters, warmup int) (benchResult, error) {
	backend, err := engine.ByName(name, workers)
	if err != nil {
		return benchResult{}, err
	}

	start := cpu.ReadCycleCounter()

	p, err := algophase.NewPhase(geom, algophase.WithBackend(backend), algophase.WithWorkers(workers))
	if err != nil {
		return benchResult{}, err
	}
	defer p.Close()

	build := cpu.CyclesToDuration(cpu.CyclesSince(start))

	for i := 0; i < warmup; i++ {
		if _, err := p.Cache(moms); err != nil {
			return benchResult{}, err
		}
	}

	if iters < 1 {
		iters = 1
	}

	start = cpu.ReadCycleCounter()
	for i := 0; i < iters; i++ {
		if _, err := p.Cache(moms); err != nil {
			return benchResult{}, err
		}
	}
	elapsed := cpu.CyclesToNanoseconds(cpu.CyclesSince(start))

	return benchResult{
		backend: p.Backend().Name,
		build:   build,
		nsPerOp: float64(elapsed) / float64(iters),
	}, nil
}
