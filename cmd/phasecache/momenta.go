package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	algophase "github.com/cwbudde/algo-phase"
)

func newMomentaCmd(a *app) *cobra.Command {
	var indexed bool

	cmd := &cobra.Command{
		Use:   "momenta",
		Short: "List the momenta with mom2-min <= |p|² <= mom2-max",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			if indexed {
				labels, err := algophase.EnumerateMomentaIndexed(a.cfg.Mom2Max, a.cfg.Mom2Min)
				if err != nil {
					return err
				}

				keys := make([]int, 0, len(labels))
				for k := range labels {
					keys = append(keys, k)
				}
				sort.Ints(keys)

				for _, k := range keys {
					fmt.Fprintf(w, "%d: %s\n", k, labels[k])
				}
				return nil
			}

			moms, err := algophase.EnumerateMomenta(a.cfg.Mom2Max, a.cfg.Mom2Min)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%6s  %12s  %5s\n", "index", "momentum", "|p|²")
			for i, p := range moms {
				fmt.Fprintf(w, "%6d  %12s  %5d\n", i, p, p.Norm2())
			}

			a.logger.Debug("momenta enumerated", "count", len(moms))
			return nil
		},
	}

	cmd.Flags().BoolVar(&indexed, "indexed", false, "print index: label pairs")

	return cmd
}
