// Package robust provides outlier-resistant statistics over float64 slices.
//
// All functions treat NaN as "missing" where their name says so (NaN*
// variants) and never reorder their inputs. Medians follow the usual
// convention of averaging the two middle values for even counts.
//
// [StackMedian] is the workhorse of the differentiation pipeline: several
// estimates of the same curve (one per window width, wavelet family or
// polynomial fit) are stacked and reduced to one value per sample, so that a
// single ill-conditioned estimate cannot drag the result.
package robust
