package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/model"
)

// EnvPrefix prefixes every environment override, e.g. DAEMKIT_N_OMEGA.
const EnvPrefix = "DAEMKIT"

// searchPaths are tried in order when no file is given. Only names with a
// YAML extension match, so a binary called daemkit is never read as config.
var searchPaths = []string{
	"daemkit.yaml",
	"daemkit.yml",
	filepath.Join("config", "daemkit.yaml"),
	filepath.Join("config", "daemkit.yml"),
}

// Load reads the configuration. file may be empty, in which case an optional
// daemkit.yaml (or .yml) is looked up in the working directory and ./config.
// fs may be nil for the OS filesystem. flags may be nil; a flag named
// "omega-min" overrides the key "omega_min".
func Load(fs afero.Fs, file string, flags *pflag.FlagSet) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if file == "" {
		found, err := findConfig(fs)
		if err != nil {
			return nil, err
		}
		file = found
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			bindErr = multierr.Append(bindErr, v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f))
		})
		if bindErr != nil {
			return nil, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	var cfg Config

	// Grid
	cfg.Grid.EaMin = v.GetFloat64("ea_min")
	cfg.Grid.EaMax = v.GetFloat64("ea_max")
	cfg.Grid.NEa = v.GetInt("n_ea")
	cfg.Grid.Log10K0 = v.GetFloat64("log10k0")

	// Ramp
	cfg.Ramp.Beta = v.GetFloat64("beta")
	cfg.Ramp.NT = v.GetInt("ramp_nt")
	cfg.Ramp.T0 = v.GetFloat64("t0")
	cfg.Ramp.Temp0 = v.GetFloat64("temp0")
	cfg.Ramp.TF = v.GetFloat64("tf")

	// Sweep
	cfg.Sweep.NOmega = v.GetInt("n_omega")
	cfg.Sweep.OmegaMin = v.GetFloat64("omega_min")
	cfg.Sweep.OmegaMax = v.GetFloat64("omega_max")
	cfg.Sweep.Workers = v.GetInt("workers")
	cfg.Sweep.NonNegative = v.GetBool("non_negative")

	// Data
	cfg.Data.NT = v.GetInt("nt")
	cfg.Data.PPMCO2Err = v.GetFloat64("ppm_co2_err")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Development = v.GetBool("log_dev")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfig returns the first existing searchPaths entry, or "" if none.
func findConfig(fs afero.Fs) (string, error) {
	for _, p := range searchPaths {
		ok, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("config: stat %s: %w", p, err)
		}
		if ok {
			return p, nil
		}
	}

	return "", nil
}

func setDefaults(v *viper.Viper) {
	tp := model.DefaultTimeDataParams()
	rp := model.DefaultRateDataParams()

	// Grid defaults
	v.SetDefault("ea_min", tp.EaMin)
	v.SetDefault("ea_max", tp.EaMax)
	v.SetDefault("n_ea", tp.NEa)
	v.SetDefault("log10k0", 10.0)

	// Ramp defaults
	v.SetDefault("beta", rp.Beta)
	v.SetDefault("ramp_nt", rp.NT)
	v.SetDefault("t0", rp.T0)
	v.SetDefault("temp0", rp.Temp0)
	v.SetDefault("tf", rp.TF)

	// Sweep defaults
	v.SetDefault("n_omega", model.DefaultNOmega)
	v.SetDefault("omega_min", model.DefaultOmegaMin)
	v.SetDefault("omega_max", model.DefaultOmegaMax)
	v.SetDefault("workers", 0)
	v.SetDefault("non_negative", true)

	// Data defaults
	v.SetDefault("nt", 250)
	v.SetDefault("ppm_co2_err", 5.0)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dev", false)
}

// validate reports every invalid setting at once.
func validate(cfg *Config) error {
	var err error
	check := func(ok bool, name string, value any, reason string) {
		if !ok {
			err = multierr.Append(err, core.ArgumentError("config", name, value, reason))
		}
	}
	finite := func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

	check(finite(cfg.Grid.EaMin) && finite(cfg.Grid.EaMax) && cfg.Grid.EaMin < cfg.Grid.EaMax,
		"ea_min/ea_max", fmt.Sprintf("%g/%g", cfg.Grid.EaMin, cfg.Grid.EaMax), "must satisfy ea_min < ea_max")
	check(cfg.Grid.NEa >= 3, "n_ea", cfg.Grid.NEa, "must be >= 3")
	check(finite(cfg.Grid.Log10K0), "log10k0", cfg.Grid.Log10K0, "must be finite")
	check(cfg.Ramp.NT >= 2, "ramp_nt", cfg.Ramp.NT, "must be >= 2")
	check(cfg.Ramp.Temp0 > 0, "temp0", cfg.Ramp.Temp0, "must be > 0")
	check(cfg.Ramp.T0 < cfg.Ramp.TF, "t0/tf", fmt.Sprintf("%g/%g", cfg.Ramp.T0, cfg.Ramp.TF), "must satisfy t0 < tf")
	check(cfg.Sweep.NOmega >= model.MinNOmega, "n_omega", cfg.Sweep.NOmega, fmt.Sprintf("must be >= %d", model.MinNOmega))
	check(cfg.Sweep.OmegaMin > 0 && cfg.Sweep.OmegaMin < cfg.Sweep.OmegaMax && finite(cfg.Sweep.OmegaMax),
		"omega_min/omega_max", fmt.Sprintf("%g/%g", cfg.Sweep.OmegaMin, cfg.Sweep.OmegaMax), "must satisfy 0 < omega_min < omega_max")
	check(cfg.Sweep.Workers >= 0, "workers", cfg.Sweep.Workers, "must be >= 0")
	check(cfg.Data.NT >= 1, "nt", cfg.Data.NT, "must be >= 1")
	check(cfg.Data.PPMCO2Err >= 0, "ppm_co2_err", cfg.Data.PPMCO2Err, "must be >= 0")
	_, lvlErr := zapcore.ParseLevel(cfg.Log.Level)
	check(lvlErr == nil, "log_level", cfg.Log.Level, "must be a zap level")

	return err
}
