package ica

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-ica/analysis/blend"
	"github.com/cwbudde/algo-ica/cell/segment"
	"github.com/cwbudde/algo-ica/cell/series"
	"github.com/cwbudde/algo-ica/cell/units"
	"github.com/cwbudde/algo-ica/config"
	"github.com/cwbudde/algo-ica/dsp/core"
	"github.com/cwbudde/algo-ica/dsp/denoise"
	"github.com/cwbudde/algo-ica/dsp/savgol"
	"github.com/cwbudde/algo-ica/dsp/slope"
	"github.com/cwbudde/algo-ica/dsp/smooth"
)

// ratioEps is the smallest denominator magnitude a derivative ratio accepts.
const ratioEps = 1e-12

// Pipeline turns a canonical series into incremental-capacity channels.
// A Pipeline is safe for concurrent use on distinct series.
type Pipeline struct {
	cfg      config.Config
	logger   *zap.Logger
	parallel bool
	denoiser *denoise.Denoiser
}

// New validates cfg and returns a Pipeline. A nil cfg selects the defaults.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := denoise.New()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      *cfg,
		logger:   zap.NewNop(),
		parallel: cfg.Parallel,
		denoiser: d,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes every stage on s and writes the resulting channels into it.
// Voltage and capacity are required; everything else degrades gracefully.
func (p *Pipeline) Run(ctx context.Context, s *series.Series) (*Result, error) {
	if err := s.Require("ica", series.Voltage, series.Capacity); err != nil {
		return nil, err
	}

	n := s.Len()
	res := &Result{
		DT:            s.DT(),
		Direction:     s.Direction(),
		SlopeWindow:   slope.WindowSamples(p.cfg.SlopeSeconds(), s.DT()),
		GaussianSigma: slope.WindowSamples(p.cfg.GaussianSeconds(), s.DT()),
	}
	log := p.logger.With(zap.Int("samples", n), zap.Float64("dt", res.DT), zap.Stringer("direction", res.Direction))

	p.categorize(s, res, log)

	if err := p.derivatives(ctx, s, res.SlopeWindow); err != nil {
		return nil, err
	}
	log.Debug("derivatives ready", zap.Int("slope_window", res.SlopeWindow))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.ratios(s, res); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.blend(s, res, log); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.gaussian(s, res); err != nil {
		return nil, err
	}

	log.Debug("pipeline finished",
		zap.Int("valid_start", res.ValidStart),
		zap.Int("valid_end", res.ValidEnd),
		zap.Int("singular", res.Singular),
		zap.Int("finite", core.CountFinite(s.Values(DVdQ))),
		zap.Int("conditions", len(res.Conditions)))
	return res, nil
}

func (p *Pipeline) categorize(s *series.Series, res *Result, log *zap.Logger) {
	err := segment.Categorize(s, p.cfg.CurrentThreshold)
	if err == nil {
		return
	}
	res.note("categorize", err)
	log.Info("skipping categorization", zap.Error(err))
}

// derivatives computes dV/dt and dQ/dt and their denoised versions. With
// parallelism enabled each chain runs in its own goroutine and owns its
// arrays until both finish.
func (p *Pipeline) derivatives(ctx context.Context, s *series.Series, window int) error {
	axis := s.TimeAxis()
	v := s.Values(series.Voltage)
	q := s.Values(series.Capacity)
	guard := denoise.Guard(s.Len())

	var dv, dvDn, dq, dqDn []float64
	chain := func(values []float64, raw, den *[]float64) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*raw = slope.Derivative(values, axis, window)
			if err := ctx.Err(); err != nil {
				return err
			}
			*den = p.denoiser.DenoiseValid(*raw, p.cfg.DenoiseStrength, guard)
			return nil
		}
	}

	if p.parallel {
		g, gctx := errgroup.WithContext(ctx)
		ctx = gctx
		g.Go(chain(v, &dv, &dvDn))
		g.Go(chain(q, &dq, &dqDn))
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		if err := chain(v, &dv, &dvDn)(); err != nil {
			return err
		}
		if err := chain(q, &dq, &dqDn)(); err != nil {
			return err
		}
	}

	return updateAll(s,
		named{DVdt, units.NewQuantity(dv, voltPerSecond)},
		named{DQdt, units.NewQuantity(dq, ampHourPerSecond)},
		named{DVdtDenoised, units.NewQuantity(dvDn, voltPerSecond)},
		named{DQdtDenoised, units.NewQuantity(dqDn, ampHourPerSecond)},
	)
}

// ratios forms dV/dQ and dQ/dV from the denoised time derivatives and
// denoises both.
func (p *Pipeline) ratios(s *series.Series, res *Result) error {
	dv := s.Values(DVdtDenoised)
	dq := s.Values(DQdtDenoised)

	vq := make([]float64, len(dv))
	qv := make([]float64, len(dv))
	for i := range dv {
		vq[i] = core.Ratio(dv[i], dq[i], ratioEps)
		qv[i] = core.Ratio(dq[i], dv[i], ratioEps)
		if core.IsFinite(dv[i]) && core.IsFinite(dq[i]) && (!core.IsFinite(vq[i]) || !core.IsFinite(qv[i])) {
			res.Singular++
		}
	}

	guard := denoise.Guard(s.Len())
	return updateAll(s,
		named{DVdQRaw, units.NewQuantity(vq, voltPerAmpHour)},
		named{DQdVRaw, units.NewQuantity(qv, ampHourPerVolt)},
		named{DVdQDenoised, units.NewQuantity(p.denoiser.DenoiseValid(vq, p.cfg.DenoiseStrength, guard), voltPerAmpHour)},
		named{DQdVDenoised, units.NewQuantity(p.denoiser.DenoiseValid(qv, p.cfg.DenoiseStrength, guard), ampHourPerVolt)},
	)
}

// blend fits both scales, derives the confidence weight and mixes the fits
// into the terminal dV/dQ and dQ/dV channels.
func (p *Pipeline) blend(s *series.Series, res *Result, log *zap.Logger) error {
	n := s.Len()
	vq := s.Values(DVdQDenoised)
	qv := s.Values(DQdVDenoised)
	order := p.cfg.PolyOrder

	interior := blend.Interior(vq, p.cfg.EdgeGuard)
	vqSmall, skipV := blend.Fit(vq, interior, n, p.cfg.SmallFractions, order)
	qvSmall, skipQ := blend.Fit(qv, interior, n, p.cfg.SmallFractions, order)
	if skipV+skipQ > 0 {
		res.note("fit small", fmt.Errorf("%w: %d windows skipped", savgol.ErrWindowTooShort, skipV+skipQ))
	}

	var vqLarge, qvLarge []float64
	valid := interior
	start, end, err := blend.ValidRange(vq, res.Direction, p.cfg.RangeGuard)
	if err == nil {
		valid = blend.Region{Start: max(start, interior.Start), End: min(end, interior.End)}
		if valid.Len() < blend.MinValidSamples {
			err = fmt.Errorf("%w: range [%d, %d) outside the fitted interior", blend.ErrInsufficientValidRange, start, end)
		}
	}
	if err != nil {
		res.note("valid range", err)
		log.Warn("large-window fit falls back to denoised curve", zap.Error(err))
		valid = interior
		vqLarge, qvLarge = core.Clone(vq), core.Clone(qv)
	} else {
		var skip int
		vqLarge, skipV = blend.Fit(vq, valid, n, p.cfg.LargeFractions, order)
		qvLarge, skipQ = blend.Fit(qv, valid, n, p.cfg.LargeFractions, order)
		if skip = skipV + skipQ; skip > 0 {
			res.note("fit large", fmt.Errorf("%w: %d windows skipped", savgol.ErrWindowTooShort, skip))
		}
	}
	res.ValidStart, res.ValidEnd = valid.Start, valid.End

	conf := blend.Confidence(qvLarge, valid.Start, valid.End)
	return updateAll(s,
		named{DVdQSmall, units.NewQuantity(vqSmall, voltPerAmpHour)},
		named{DQdVSmall, units.NewQuantity(qvSmall, ampHourPerVolt)},
		named{DVdQLarge, units.NewQuantity(vqLarge, voltPerAmpHour)},
		named{DQdVLarge, units.NewQuantity(qvLarge, ampHourPerVolt)},
		named{Confidence, units.Dimensionless(conf)},
		named{DVdQ, units.NewQuantity(blend.Blend(vqSmall, vqLarge, conf), voltPerAmpHour)},
		named{DQdV, units.NewQuantity(blend.Blend(qvSmall, qvLarge, conf), ampHourPerVolt)},
	)
}

// gaussian writes the Gaussian-smoothed variant of dV/dQ and its reciprocal.
func (p *Pipeline) gaussian(s *series.Series, res *Result) error {
	raw := s.Values(DVdQRaw)
	out := core.Clone(raw)

	r := blend.Interior(raw, p.cfg.EdgeGuard)
	if r.Len() > 0 {
		seg := p.denoiser.DenoiseValid(raw[r.Start:r.End], p.cfg.DenoiseStrength, 0)
		if core.AllFinite(seg) {
			smoothed, err := smooth.Gaussian(seg, float64(res.GaussianSigma))
			if err != nil {
				return fmt.Errorf("ica: gaussian variant: %w", err)
			}
			seg = smoothed
		} else {
			res.note("gaussian", errors.New("non-finite samples in interior, smoothing skipped"))
		}
		copy(out[r.Start:], seg)
	}

	return updateAll(s,
		named{DVdQGaussian, units.NewQuantity(out, voltPerAmpHour)},
		named{DQdVGaussian, units.NewQuantity(core.Reciprocal(nil, out), ampHourPerVolt)},
	)
}

type named struct {
	name string
	q    units.Quantity
}

func updateAll(s *series.Series, channels ...named) error {
	for _, c := range channels {
		if err := s.Update(c.name, c.q); err != nil {
			return fmt.Errorf("ica: %s: %w", c.name, err)
		}
	}
	return nil
}
