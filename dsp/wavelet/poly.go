package wavelet

// poly is a Laurent polynomial in z⁻¹: c[i] is the tap at index lo+i.
type poly struct {
	c  []float64
	lo int
}

func constPoly(v float64) poly {
	return poly{c: []float64{v}}
}

func (p poly) hi() int { return p.lo + len(p.c) - 1 }

func (p poly) mul(q poly) poly {
	out := make([]float64, len(p.c)+len(q.c)-1)
	for i, a := range p.c {
		for j, b := range q.c {
			out[i+j] += a * b
		}
	}
	return poly{c: out, lo: p.lo + q.lo}
}

func (p poly) add(q poly) poly {
	lo := min(p.lo, q.lo)
	hi := max(p.hi(), q.hi())
	out := make([]float64, hi-lo+1)
	for i, v := range p.c {
		out[p.lo-lo+i] += v
	}
	for i, v := range q.c {
		out[q.lo-lo+i] += v
	}
	return poly{c: out, lo: lo}
}

func (p poly) scale(s float64) poly {
	out := make([]float64, len(p.c))
	for i, v := range p.c {
		out[i] = v * s
	}
	return poly{c: out, lo: p.lo}
}

func (p poly) pow(k int) poly {
	out := constPoly(1)
	for range k {
		out = out.mul(p)
	}
	return out
}

func (p poly) shift(k int) poly {
	return poly{c: p.c, lo: p.lo + k}
}

// modulate returns taps (-1)^(n+s) p[n], the quadrature mirror used to derive
// highpass filters.
func (p poly) modulate(s int) poly {
	out := make([]float64, len(p.c))
	for i, v := range p.c {
		if (p.lo+i+s)%2 == 0 {
			out[i] = v
		} else {
			out[i] = -v
		}
	}
	return poly{c: out, lo: p.lo}
}
