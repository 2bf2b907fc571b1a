package genome

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/caioreina/lottery/internal/triple"
)

// NewRandom builds a genome from drawCount independently generated random
// draws. Each draw is stratified across the three number bands to avoid
// degenerate clustering; duplicate draws are dropped after generation.
func NewRandom(u *triple.Universe, rng *rand.Rand, drawCount int) (*Genome, error) {
	if u == nil {
		return nil, fmt.Errorf("universe is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if drawCount <= 0 {
		return nil, fmt.Errorf("draw count must be > 0, got %d", drawCount)
	}

	g := &Genome{universe: u, Provenance: ProvenanceRandom}
	g.Draws = make([]triple.Draw, 0, drawCount)
	for i := 0; i < drawCount; i++ {
		g.Draws = append(g.Draws, RandomDraw(u, rng))
	}
	g.DeduplicateDraws()
	g.RecomputeCoverage()
	return g, nil
}

// RandomDraw generates one draw by stratified sampling: the domain is split
// into low/mid/high thirds, band sizes are randomized to sum to DrawSize, and
// numbers are sampled without replacement inside each band.
func RandomDraw(u *triple.Universe, rng *rand.Rand) triple.Draw {
	low, mid, high := bands(u)

	lowCount := 1 + rng.Intn(3)
	highCount := 1 + rng.Intn(3)
	midCount := triple.DrawSize - lowCount - highCount

	picked := make([]int, 0, triple.DrawSize)
	picked = sampleBand(rng, picked, low, lowCount)
	picked = sampleBand(rng, picked, mid, midCount)
	picked = sampleBand(rng, picked, high, highCount)

	// Small domains can exhaust a band; top up from the whole domain.
	if len(picked) < triple.DrawSize {
		picked = topUp(u, rng, picked)
	}

	sort.Ints(picked)
	var d triple.Draw
	copy(d[:], picked)
	return d
}

// bands splits the domain into three contiguous thirds. For [1, 60] these are
// 1-20, 21-40 and 41-60.
func bands(u *triple.Universe) (low, mid, high []int) {
	span := u.Max() - u.Min() + 1
	third := span / 3
	lowEnd := u.Min() + third - 1
	midEnd := u.Min() + 2*third - 1
	for n := u.Min(); n <= u.Max(); n++ {
		switch {
		case n <= lowEnd:
			low = append(low, n)
		case n <= midEnd:
			mid = append(mid, n)
		default:
			high = append(high, n)
		}
	}
	return low, mid, high
}

func sampleBand(rng *rand.Rand, picked, band []int, count int) []int {
	if count <= 0 {
		return picked
	}
	if count > len(band) {
		count = len(band)
	}
	for _, idx := range rng.Perm(len(band))[:count] {
		picked = append(picked, band[idx])
	}
	return picked
}

// topUp fills picked to DrawSize with distinct numbers from the whole domain.
func topUp(u *triple.Universe, rng *rand.Rand, picked []int) []int {
	used := make(map[int]struct{}, len(picked))
	for _, n := range picked {
		used[n] = struct{}{}
	}
	for len(picked) < triple.DrawSize {
		n := u.Min() + rng.Intn(u.Max()-u.Min()+1)
		if _, ok := used[n]; ok {
			continue
		}
		used[n] = struct{}{}
		picked = append(picked, n)
	}
	return picked
}
