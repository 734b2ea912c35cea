package sim

import (
	"math"
	"sort"
)

// Summary condenses the trial outcomes for one reveal size.
type Summary struct {
	Mean float64 `json:"mean"`
	// SuccessRate is the percentage of trials reaching at least MaxKeep
	// distinct types, in [0, 100].
	SuccessRate float64 `json:"success_rate"`
	StdDev      float64 `json:"stddev"`
	P50         float64 `json:"p50"`
	P90         float64 `json:"p90"`
	Trials      int     `json:"trials"`
}

// Summarize reduces a Results table to per-X summaries. Reveal sizes with no
// trials are omitted; the driver guarantees that never happens for a valid
// run.
func Summarize(r Results) map[int]Summary {
	out := make(map[int]Summary, len(r))
	for x, xs := range r {
		if len(xs) == 0 {
			continue
		}
		out[x] = summarizeOne(xs)
	}
	return out
}

// summarizeOne computes mean/success rate/stddev/percentiles for one batch.
func summarizeOne(xs []int) Summary {
	n := len(xs)

	var sum float64
	successes := 0
	for _, v := range xs {
		sum += float64(v)
		if v >= MaxKeep {
			successes++
		}
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	stddev := math.Sqrt(acc / float64(n))

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Summary{
		Mean:        mean,
		SuccessRate: 100 * float64(successes) / float64(n),
		StdDev:      stddev,
		P50:         percentile(0.50),
		P90:         percentile(0.90),
		Trials:      n,
	}
}
