package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/daemkit/model"
)

func newForwardCmd(a *app) *cobra.Command {
	var omega float64

	cmd := &cobra.Command{
		Use:   "forward <thermogram.csv>",
		Short: "Predict the thermogram of the fitted distribution under another ramp",
		Long: `forward inverts the thermogram like invert, then rebuilds the DAEM on the
fitted activation-energy grid with the ramp given by --beta, --ramp-nt,
--t0, --temp0 and --tf, and reports the fraction remaining that ramp
would produce.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			inv, err := a.invert(args[0], omega)
			if err != nil {
				return err
			}
			rm, err := model.DaemFromRateData(inv.ec.Ea, a.cfg.RateDataParams(),
				model.WithLogger(a.logger),
				model.WithWorkers(a.cfg.Sweep.Workers))
			if err != nil {
				return err
			}
			g, err := rm.Predict(inv.ec.F)
			if err != nil {
				return err
			}
			a.logger.Info("forward prediction",
				zap.Float64("beta", a.cfg.Ramp.Beta),
				zap.Int("nt", rm.NT()))

			return writeYAML(a.out, newForwardReport(args[0], a.cfg.Ramp.Beta, inv, rm, g))
		},
	}
	cmd.Flags().Float64Var(&omega, "omega", 0, "regularization strength (<= 0: pick from the L-curve)")

	return cmd
}
