package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/daemkit/lcplot"
)

func newLCurveCmd(a *app) *cobra.Command {
	var plotPath string
	var withPoints bool

	cmd := &cobra.Command{
		Use:   "lcurve <thermogram.csv>",
		Short: "Sweep omega and report the L-curve corner",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			td, m, err := a.loadModel(args[0])
			if err != nil {
				return err
			}
			lc, err := m.LCurve(td.G(), a.cfg.LCurveOptions()...)
			if err != nil {
				return err
			}
			a.logger.Info("l-curve corner", zap.Float64("omega", lc.BestOmega()), zap.Int("index", lc.Best))

			if plotPath != "" {
				o := lcplot.DefaultOptions()
				o.Title = "L-curve: " + args[0]
				if err := lcplot.Save(a.fs, plotPath, lc, o); err != nil {
					return err
				}
			}

			rep, err := newLCurveReport(args[0], m, lc, withPoints)
			if err != nil {
				return err
			}
			a.logger.Debug("design matrix", zap.Float64("cond", rep.CondA))

			return writeYAML(a.out, rep)
		},
	}
	cmd.Flags().StringVar(&plotPath, "plot", "", "render the L-curve to this file (.png, .svg, .pdf)")
	cmd.Flags().BoolVar(&withPoints, "points", false, "include every sweep point in the report")

	return cmd
}
