// Package smooth provides Gaussian smoothing with reflected boundaries.
package smooth
