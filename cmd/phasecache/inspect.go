package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-phase/internal/fieldio"
)

func newInspectCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the header of a phase cache file and check unit modulus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			stack, codec, err := fieldio.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "codec:   %s\n", codec)
			fmt.Fprintf(w, "shape:   %s\n", stack.Shape)
			fmt.Fprintf(w, "momenta: %d\n", stack.Len())

			var worst float64
			for k := 0; k < stack.Len(); k++ {
				field := stack.Field(k)

				var dev float64
				for _, v := range field.Data {
					dev = math.Max(dev, math.Abs(cmplx.Abs(v)-1))
				}
				worst = math.Max(worst, dev)

				if verbose {
					fmt.Fprintf(w, "  %4d  %12s  max||z|-1| = %.3g\n", k, field.Momentum, dev)
				}
			}

			fmt.Fprintf(w, "max ||z|-1|: %.3g\n", worst)
			a.logger.Debug("phase cache inspected", "path", args[0], "momenta", stack.Len())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every momentum")

	return cmd
}
