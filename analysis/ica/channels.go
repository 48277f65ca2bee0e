package ica

import "github.com/cwbudde/algo-ica/cell/units"

// Channels written by Pipeline.Run.
const (
	DVdt         = "dV/dt"
	DQdt         = "dQ/dt"
	DVdtDenoised = "dV/dt_denoise"
	DQdtDenoised = "dQ/dt_denoise"
	DVdQRaw      = "dV/dQ_raw"
	DQdVRaw      = "dQ/dV_raw"
	DVdQDenoised = "dV/dQ_denoise"
	DQdVDenoised = "dQ/dV_denoise"
	DVdQSmall    = "dV/dQ_small"
	DQdVSmall    = "dQ/dV_small"
	DVdQLarge    = "dV/dQ_large"
	DQdVLarge    = "dQ/dV_large"
	Confidence   = "confidence"
	DVdQGaussian = "dV/dQ_g"
	DQdVGaussian = "dQ/dV_g"
	DVdQ         = "dV/dQ"
	DQdV         = "dQ/dV"
)

// Derived units of the written channels.
var (
	voltPerSecond    = units.Volt.MustDiv(units.Second)
	ampHourPerSecond = units.AmpHour.MustDiv(units.Second)
	voltPerAmpHour   = units.Volt.MustDiv(units.AmpHour)
	ampHourPerVolt   = units.AmpHour.MustDiv(units.Volt)
)
