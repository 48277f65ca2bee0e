package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ICA_CRATE.
const EnvPrefix = "ICA"

// Load reads configuration from path, or from ica.yaml in the working
// directory when path is empty. A missing default file is not an error.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ica")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	return parse(v)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("denoise_strength", d.DenoiseStrength)
	v.SetDefault("crate", d.Crate)
	v.SetDefault("slope_window", d.SlopeWindow)
	v.SetDefault("poly_order", d.PolyOrder)
	v.SetDefault("small_fractions", d.SmallFractions)
	v.SetDefault("large_fractions", d.LargeFractions)
	v.SetDefault("current_threshold", d.CurrentThreshold)
	v.SetDefault("edge_guard", d.EdgeGuard)
	v.SetDefault("range_guard", d.RangeGuard)
	v.SetDefault("parallel", d.Parallel)
}

func parse(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
