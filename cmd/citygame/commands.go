package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/game"
	"github.com/playperu/citydistance/internal/selector"
)

func newPlayCmd(cfg *Config, in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play rounds interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, release, err := cfg.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			m := game.New(
				selector.New(cat, selector.NewRandSource(cfg.seed)),
				distance.New(cat),
				game.WithCityCount(cfg.count),
				game.WithLogger(cfg.logger()),
			)
			return play(m, in, out)
		},
	}
}

func newDistanceCmd(cfg *Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "distance FROM TO",
		Short: "Print the great-circle distance between two cities",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, release, err := cfg.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			d, err := distance.New(cat).Distance(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s to %s: %s\n", args[0], args[1], distance.Format(d))
			return nil
		},
	}
}

func newCitiesCmd(cfg *Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the city catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, release, err := cfg.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLNG\tLAT\tGEOHASH")
			for _, c := range cat.Cities() {
				fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%s\n", c.Name, c.Coord.Lng, c.Coord.Lat, catalog.Geohash(c.Coord, cfg.precision))
			}
			return tw.Flush()
		},
	}
}

func newExtremesCmd(cfg *Config, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "extremes",
		Short: "Print the nearest and farthest pair in the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, release, err := cfg.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			ex, err := distance.New(cat).CatalogExtremes()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "nearest: ", formatPair(ex.Nearest))
			fmt.Fprintln(out, "farthest:", formatPair(ex.Farthest))
			return nil
		},
	}
}
