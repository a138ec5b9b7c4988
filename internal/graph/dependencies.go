package graph

import (
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/rng"
)

// Dependencies returns the forward dependency intervals of point p at the
// given dependence set: the set of previous-row points task (t,p) must wait
// on, where dset = Dset(g, t).
func Dependencies(g *config.TaskGraph, dset, p int) []Interval {
	W := g.MaxWidth
	switch g.Dependence {
	case config.PatternTrivial:
		return nil
	case config.PatternNoComm:
		return []Interval{{p, p}}
	case config.PatternStencil1D:
		return stencilInterval(p, W)
	case config.PatternStencil1DPeriodic:
		return stencilPeriodic(p, W)
	case config.PatternDom:
		lo := p - 1
		if lo < 0 {
			lo = 0
		}
		return []Interval{{lo, p}}
	case config.PatternTree:
		return []Interval{{p / 2, p / 2}}
	case config.PatternFFT:
		return fftSet(dset, p, W)
	case config.PatternAllToAll:
		return []Interval{{0, W - 1}}
	case config.PatternNearest:
		if g.Radix <= 0 {
			return nil
		}
		iv, ok := nearestWindow(p, g.Radix, W)
		if !ok {
			return nil
		}
		return []Interval{iv}
	case config.PatternSpread:
		return spreadPoints(g, dset, p, false)
	case config.PatternRandomNearest:
		return randomNearestSweep(g, dset, p, false)
	case config.PatternRandomSpread:
		// random_spread has no distinct forward generator of its own; its
		// forward dependencies are computed by random_nearest's reverse
		// routine (swapped window + tuple).
		return randomNearestSweep(g, dset, p, true)
	default:
		return nil
	}
}

// ReverseDependencies returns the reverse dependency intervals of point p at
// the given dependence set: the set of next-row points that depend on task
// (t, p), where dset = Dset(g, t).
func ReverseDependencies(g *config.TaskGraph, dset, p int) []Interval {
	W := g.MaxWidth
	switch g.Dependence {
	case config.PatternTrivial:
		return nil
	case config.PatternNoComm:
		return []Interval{{p, p}}
	case config.PatternStencil1D:
		return stencilInterval(p, W)
	case config.PatternStencil1DPeriodic:
		return stencilPeriodic(p, W)
	case config.PatternDom:
		hi := p + 1
		if hi > W-1 {
			hi = W - 1
		}
		return []Interval{{p, hi}}
	case config.PatternTree:
		lo, hi := 2*p, 2*p+1
		if lo > W-1 {
			return nil
		}
		if hi > W-1 {
			hi = lo
		}
		return []Interval{{lo, hi}}
	case config.PatternFFT:
		return fftSet(dset, p, W)
	case config.PatternAllToAll:
		return []Interval{{0, W - 1}}
	case config.PatternNearest:
		if g.Radix <= 0 {
			return nil
		}
		iv, ok := nearestWindowMirrored(p, g.Radix, W)
		if !ok {
			return nil
		}
		return []Interval{iv}
	case config.PatternSpread:
		return spreadPoints(g, dset, p, true)
	case config.PatternRandomNearest:
		return randomNearestSweep(g, dset, p, true)
	case config.PatternRandomSpread:
		return randomNearestSweep(g, dset, p, false)
	default:
		return nil
	}
}

func stencilInterval(p, W int) []Interval {
	lo, hi := p-1, p+1
	if lo < 0 {
		lo = 0
	}
	if hi > W-1 {
		hi = W - 1
	}
	return []Interval{{lo, hi}}
}

func stencilPeriodic(p, W int) []Interval {
	base := stencilInterval(p, W)[0]
	pts := make([]int, 0, base.Len()+2)
	for i := base.Lo; i <= base.Hi; i++ {
		pts = append(pts, i)
	}
	if p == 0 {
		pts = append(pts, W-1)
	}
	if p == W-1 {
		pts = append(pts, 0)
	}
	return coalescePoints(pts)
}

func fftSet(dset, p, W int) []Interval {
	k := 1 << dset
	pts := make([]int, 0, 3)
	if p-k >= 0 {
		pts = append(pts, p-k)
	}
	pts = append(pts, p)
	if p+k < W {
		pts = append(pts, p+k)
	}
	return coalescePoints(pts)
}

// nearestWindow is the forward window: [p - R/2, p + (R-1)/2].
func nearestWindow(p, R, W int) (Interval, bool) {
	lo := p - R/2
	hi := p + (R-1)/2
	iv := Interval{lo, hi}
	return iv.Clamp(W)
}

// nearestWindowMirrored is the reverse window, derived so that
// q in forwardWindow(p) iff p in mirroredWindow(q): [p - (R-1)/2, p + R/2].
func nearestWindowMirrored(p, R, W int) (Interval, bool) {
	lo := p - (R-1)/2
	hi := p + R/2
	iv := Interval{lo, hi}
	return iv.Clamp(W)
}

// spreadPoints computes the spread dependence set, forward or reverse. The
// forward relation maps consumer p to R producers; the reverse relation is
// its direct algebraic dual. The per-i offset is floor(i*W/R), not
// i*floor(W/R) -- integer division does not distribute, so W/R must not be
// pre-divided.
func spreadPoints(g *config.TaskGraph, dset, p int, reverse bool) []Interval {
	if g.Radix <= 0 {
		return nil
	}
	W := g.MaxWidth
	pts := make([]int, 0, g.Radix)
	for i := 0; i < g.Radix; i++ {
		off := 0
		if i > 0 {
			off = dset
		}
		step := i * W / g.Radix
		var v int
		if reverse {
			v = mod(p-step-off, W)
		} else {
			v = mod(p+step+off, W)
		}
		pts = append(pts, v)
	}
	return coalescePoints(pts)
}

// randomNearestSweep computes the random_nearest dependence set. When
// reverse is false it is the forward relation (consumer p sweeps candidate
// producers); when true it is the reverse relation (producer p sweeps
// candidate consumers), using the mirrored window and the hash tuple order
// documented in internal/rng: the forward key orders the pair (candidate,
// consumer) while the reverse key swaps it to (producer, candidate), so
// both directions consult the same hash bits for the same edge.
func randomNearestSweep(g *config.TaskGraph, dset, p int, reverse bool) []Interval {
	if g.Radix <= 0 {
		return nil
	}
	W := g.MaxWidth
	var win Interval
	var ok bool
	if reverse {
		win, ok = nearestWindowMirrored(p, g.Radix, W)
	} else {
		win, ok = nearestWindow(p, g.Radix, W)
	}
	if !ok {
		return nil
	}

	pts := make([]int, 0, win.Len())
	for i := win.Lo; i <= win.Hi; i++ {
		if i == p {
			pts = append(pts, i)
			continue
		}
		var key rng.Key
		if reverse {
			// p is the producer, i is the candidate consumer.
			key = rng.Key{int64(g.GraphIndex), int64(g.Radix), int64(dset), int64(p), int64(i)}
		} else {
			// i is the candidate producer, p is the consumer.
			key = rng.Key{int64(g.GraphIndex), int64(g.Radix), int64(dset), int64(i), int64(p)}
		}
		if rng.RandomUniform(key) < g.FractionConnected {
			pts = append(pts, i)
		}
	}
	return coalescePoints(pts)
}
