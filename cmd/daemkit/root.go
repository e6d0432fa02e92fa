package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/daemkit/config"
	"github.com/katalvlaran/daemkit/model"
	"github.com/katalvlaran/daemkit/timedata"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries what every subcommand needs after flags are parsed.
type app struct {
	fs     afero.Fs
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out}
	var cfgFile string

	root := &cobra.Command{
		Use:   "daemkit",
		Short: "DAEM inversion of ramped-temperature thermograms",
		Long: `daemkit builds a Distributed Activation Energy Model from a thermogram,
selects the regularization strength on the L-curve and inverts the
fraction-remaining curve into an activation-energy distribution.

Commands:
  lcurve  - sweep omega and report the L-curve corner
  invert  - fit the activation-energy distribution
  forward - predict the fitted distribution under another ramp`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.fs, cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, err = newLogger(cfg)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file (default ./daemkit.yaml if present)")
	pf.Float64("ea-min", 50, "lowest activation energy, kJ/mol")
	pf.Float64("ea-max", 350, "highest activation energy, kJ/mol")
	pf.Int("n-ea", 250, "number of activation energies")
	pf.Float64("log10k0", 10, "log10 of the pre-exponential factor, 1/s")
	pf.Float64("beta", 0.08, "forward ramp rate, K/s")
	pf.Int("ramp-nt", 250, "forward ramp samples")
	pf.Float64("t0", 0, "forward ramp start time, s")
	pf.Float64("temp0", 373, "forward ramp start temperature, K")
	pf.Float64("tf", 1e4, "forward ramp end time, s")
	pf.Int("nt", 250, "number of down-sampled thermogram points")
	pf.Float64("ppm-co2-err", 5, "CO2 standard deviation, ppm")
	pf.Int("n-omega", model.DefaultNOmega, "L-curve sweep points")
	pf.Float64("omega-min", model.DefaultOmegaMin, "smallest omega in the sweep")
	pf.Float64("omega-max", model.DefaultOmegaMax, "largest omega in the sweep")
	pf.Int("workers", 0, "concurrent solves in the sweep (0: GOMAXPROCS)")
	pf.Bool("non-negative", true, "constrain the distribution to f >= 0")
	pf.String("log-level", "info", "log level")
	pf.Bool("log-dev", false, "human-readable development logging")

	root.AddCommand(newLCurveCmd(a), newInvertCmd(a), newForwardCmd(a))

	return root
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	return logger, nil
}

// loadModel reads the thermogram at path and builds the DAEM on it.
func (a *app) loadModel(path string) (*timedata.TimeData, *model.Model, error) {
	td, err := timedata.LoadThermogramCSV(a.fs, path, a.cfg.LoadParams())
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("thermogram loaded", zap.String("path", path), zap.Int("nt", td.NT()))

	m, err := model.DaemFromTimeData(td, a.cfg.TimeDataParams(),
		model.WithLogger(a.logger),
		model.WithWorkers(a.cfg.Sweep.Workers))
	if err != nil {
		return nil, nil, err
	}

	return td, m, nil
}
