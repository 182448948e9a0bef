package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	algophase "github.com/cwbudde/algo-phase"
	"github.com/cwbudde/algo-phase/internal/fieldio"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the phase cache of one rank and optionally write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg

			codec, err := fieldio.ParseCodec(cfg.Codec)
			if err != nil {
				return err
			}

			moms, err := algophase.EnumerateMomenta(cfg.Mom2Max, cfg.Mom2Min)
			if err != nil {
				return err
			}

			p, err := openPhase(cfg, a.logger)
			if err != nil {
				return err
			}
			defer p.Close()

			start := time.Now()

			stack, err := p.Cache(moms)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rank %d: %d momenta over %s on %s\n",
				cfg.Rank, stack.Len(), stack.Shape, p.Backend().Name)

			if cfg.Out == "" {
				return nil
			}

			if err := writeStack(cfg.Out, stack, codec); err != nil {
				return err
			}

			a.logger.Info("phase cache written",
				"path", cfg.Out,
				"rank", cfg.Rank,
				"backend", p.Backend().Name,
				"momenta", stack.Len(),
				"shape", stack.Shape.String(),
				"codec", codec.String(),
				"duration", time.Since(start),
			)

			return nil
		},
	}

	cmd.Flags().String("out", "", "output file (none: summary only)")
	cmd.Flags().String("codec", "zstd", "payload compression: none, zstd or lz4")

	return cmd
}

func writeStack(path string, stack *algophase.FieldStack, codec fieldio.Codec) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return fieldio.Write(f, stack, codec)
}
