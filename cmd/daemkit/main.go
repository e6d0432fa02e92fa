// Command daemkit inverts ramped-temperature thermograms into
// activation-energy distributions.
//
//	daemkit lcurve TS1.csv --plot lcurve.png
//	daemkit invert TS1.csv --omega 0.05
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
