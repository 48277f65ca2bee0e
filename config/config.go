// Package config holds the tunables of the incremental-capacity pipeline and
// loads them from YAML files and ICA_ environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds every pipeline-affecting parameter.
type Config struct {
	// DenoiseStrength multiplies the universal wavelet threshold.
	DenoiseStrength float64 `mapstructure:"denoise_strength" validate:"gt=0"`
	// Crate is the nominal C-rate used to size the slope window.
	Crate float64 `mapstructure:"crate" validate:"gt=0"`
	// SlopeWindow scales the physical slope window of 12/Crate seconds.
	SlopeWindow float64 `mapstructure:"slope_window" validate:"gt=0"`
	// PolyOrder is the Savitzky-Golay polynomial order of the blend fits.
	PolyOrder int `mapstructure:"poly_order" validate:"gte=0,lte=10"`
	// SmallFractions and LargeFractions are window lengths as fractions of
	// the curve length.
	SmallFractions []float64 `mapstructure:"small_fractions" validate:"required,min=1,dive,gt=0,lt=1"`
	LargeFractions []float64 `mapstructure:"large_fractions" validate:"required,min=1,dive,gt=0,lt=1"`
	// CurrentThreshold separates rest from charge and discharge, in amperes.
	CurrentThreshold float64 `mapstructure:"current_threshold" validate:"gte=0"`
	// EdgeGuard is trimmed from each end of the finite curve before fitting.
	EdgeGuard int `mapstructure:"edge_guard" validate:"gte=0"`
	// RangeGuard is trimmed from each end of the valid range.
	RangeGuard int `mapstructure:"range_guard" validate:"gte=0"`
	// Parallel processes the voltage and capacity chains concurrently.
	Parallel bool `mapstructure:"parallel"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		DenoiseStrength:  3.5,
		Crate:            0.2,
		SlopeWindow:      1,
		PolyOrder:        3,
		SmallFractions:   []float64{0.02, 0.03, 0.04},
		LargeFractions:   []float64{0.03, 0.04, 0.05, 0.06, 0.07},
		CurrentThreshold: 0.001,
		EdgeGuard:        10,
		RangeGuard:       10,
	}
}

// SlopeSeconds returns the physical slope window in seconds.
func (c *Config) SlopeSeconds() float64 {
	return c.SlopeWindow * 12 / c.Crate
}

// GaussianSeconds returns the physical width of the Gaussian variant.
func (c *Config) GaussianSeconds() float64 {
	return 12 / c.Crate
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
