package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/database"
	"github.com/playperu/citydistance/internal/migrations"
)

type Config struct {
	count     int
	dbPath    string
	precision int
	seed      uint64
	verbose   bool
}

func (c *Config) validate() error {
	if c.count < 2 {
		return fmt.Errorf("invalid city count (must be at least 2): %d", c.count)
	}
	if c.precision < 1 || c.precision > 12 {
		return fmt.Errorf("invalid geohash precision (must be between 1-12 inclusive): %d", c.precision)
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openCatalog returns the built-in catalog, or the one stored in --db when
// given. The returned func releases the database.
func (c *Config) openCatalog(ctx context.Context) (*catalog.Catalog, func(), error) {
	if c.dbPath == "" {
		return catalog.Default(), func() {}, nil
	}

	db, err := database.Open(ctx, c.dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	cat, err := catalog.Load(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return cat, func() { db.Close() }, nil
}

func newCmd(cfg *Config, in io.Reader, out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CITYGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "citygame",
		Short:   "Guess which pair of cities is nearest and which is farthest.",
		Version: releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.validate()
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVarP(&cfg.count, "count", "c", 3, "cities drawn per game (env: CITYGAME_COUNT)")
	fs.StringVar(&cfg.dbPath, "db", "", "sqlite catalog to read instead of the built-in one (env: CITYGAME_DB)")
	fs.IntVar(&cfg.precision, "precision", 6, "geohash precision for city listings (env: CITYGAME_PRECISION)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "random seed, 0 for a clock-based one (env: CITYGAME_SEED)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output to stderr (env: CITYGAME_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(
		newPlayCmd(cfg, in, out),
		newDistanceCmd(cfg, out),
		newCitiesCmd(cfg, out),
		newExtremesCmd(cfg, out),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("citygame v{{.Version}}\n")
	cmd.SetIn(in)
	cmd.SetOut(out)

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
