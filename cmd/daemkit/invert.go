package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/daemkit/model"
	"github.com/katalvlaran/daemkit/ratedata"
	"github.com/katalvlaran/daemkit/timedata"
)

// inversion is one fitted thermogram.
type inversion struct {
	td *timedata.TimeData
	m  *model.Model
	ec *ratedata.EnergyComplex
	lc *model.LCurve // nil when omega was given
}

// invert loads path and fits it at omega, or at the L-curve corner when
// omega <= 0.
func (a *app) invert(path string, omega float64) (*inversion, error) {
	td, m, err := a.loadModel(path)
	if err != nil {
		return nil, err
	}
	var opts []ratedata.Option
	if !a.cfg.Sweep.NonNegative {
		opts = append(opts, ratedata.Unconstrained())
	}

	inv := &inversion{td: td, m: m}
	if omega > 0 {
		inv.ec, err = ratedata.InverseModel(m, td.G(), omega, opts...)
	} else {
		opts = append(opts, ratedata.WithLCurveOptions(a.cfg.LCurveOptions()...))
		inv.ec, inv.lc, err = ratedata.InverseModelAuto(m, td.G(), opts...)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Info("inversion done",
		zap.String("path", path),
		zap.Float64("omega", inv.ec.Omega),
		zap.Bool("from_lcurve", inv.lc != nil))

	return inv, nil
}

func newInvertCmd(a *app) *cobra.Command {
	var omega, prominence float64

	cmd := &cobra.Command{
		Use:   "invert <thermogram.csv>",
		Short: "Fit the activation-energy distribution",
		Long: `invert fits the thermogram's fraction-remaining curve. With --omega <= 0
(the default) omega is taken from the L-curve corner first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			inv, err := a.invert(args[0], omega)
			if err != nil {
				return err
			}
			fit, err := inv.td.ForwardModel(inv.m, inv.ec.F)
			if err != nil {
				return err
			}
			a.logger.Info("forward fit", zap.Float64("rmse", fit.RMSE))

			rep, err := newInvertReport(args[0], inv.m, inv.ec, inv.lc, fit, prominence)
			if err != nil {
				return err
			}

			return writeYAML(a.out, rep)
		},
	}
	cmd.Flags().Float64Var(&omega, "omega", 0, "regularization strength (<= 0: pick from the L-curve)")
	cmd.Flags().Float64Var(&prominence, "prominence", 0.05, "minimum peak prominence relative to max(f)")

	return cmd
}
