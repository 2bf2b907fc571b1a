package genome

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/caioreina/lottery/internal/triple"
)

// tripleCategory classifies a triple by which band its numbers fall in and by
// their parity. Grouped construction allocates draw quotas per category so the
// seed population leans toward covering each region of the universe.
type tripleCategory struct {
	band   string // "low", "mid", "high" or "mixed"
	parity string // "even", "odd" or "mixed"
}

func (c tripleCategory) String() string {
	return c.band + "/" + c.parity
}

// NewGrouped builds a genome whose draws are biased toward covering specific
// triple categories. Quotas are proportional to category size, every
// non-empty category receives at least one draw, and any shortfall pads the
// largest category.
func NewGrouped(u *triple.Universe, rng *rand.Rand, drawCount int) (*Genome, error) {
	if u == nil {
		return nil, fmt.Errorf("universe is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if drawCount <= 0 {
		return nil, fmt.Errorf("draw count must be > 0, got %d", drawCount)
	}

	sizes := categorySizes(u)
	quotas := allocateQuotas(sizes, drawCount)

	g := &Genome{universe: u, Provenance: ProvenanceGrouped}
	g.Draws = make([]triple.Draw, 0, drawCount)
	for _, cq := range quotas {
		pool := categoryPool(u, cq.category)
		for i := 0; i < cq.count; i++ {
			g.Draws = append(g.Draws, drawFromPool(u, rng, pool))
		}
	}
	g.DeduplicateDraws()
	g.RecomputeCoverage()
	return g, nil
}

func categorize(t triple.Triple, u *triple.Universe) tripleCategory {
	low, mid, _ := bands(u)
	lowEnd := low[len(low)-1]
	midEnd := mid[len(mid)-1]

	bandOf := func(n int) string {
		switch {
		case n <= lowEnd:
			return "low"
		case n <= midEnd:
			return "mid"
		default:
			return "high"
		}
	}
	band := bandOf(t[0])
	for _, n := range t[1:] {
		if bandOf(n) != band {
			band = "mixed"
			break
		}
	}

	parity := "even"
	if t[0]%2 != 0 {
		parity = "odd"
	}
	for _, n := range t[1:] {
		p := "even"
		if n%2 != 0 {
			p = "odd"
		}
		if p != parity {
			parity = "mixed"
			break
		}
	}
	return tripleCategory{band: band, parity: parity}
}

func categorySizes(u *triple.Universe) map[tripleCategory]int {
	sizes := make(map[tripleCategory]int)
	for _, t := range u.All() {
		sizes[categorize(t, u)]++
	}
	return sizes
}

type categoryQuota struct {
	category tripleCategory
	count    int
}

// allocateQuotas distributes drawCount across non-empty categories in
// proportion to their triple counts. Every category gets at least one draw;
// leftover or overflow adjustments land on the largest category.
func allocateQuotas(sizes map[tripleCategory]int, drawCount int) []categoryQuota {
	categories := make([]tripleCategory, 0, len(sizes))
	total := 0
	for c, n := range sizes {
		categories = append(categories, c)
		total += n
	}
	sort.Slice(categories, func(i, j int) bool {
		if sizes[categories[i]] != sizes[categories[j]] {
			return sizes[categories[i]] > sizes[categories[j]]
		}
		return categories[i].String() < categories[j].String()
	})

	quotas := make([]categoryQuota, 0, len(categories))
	assigned := 0
	for _, c := range categories {
		count := drawCount * sizes[c] / total
		if count < 1 {
			count = 1
		}
		quotas = append(quotas, categoryQuota{category: c, count: count})
		assigned += count
	}

	// The largest category absorbs any shortfall; minimum-one guarantees can
	// also overshoot, in which case it gives counts back down to one.
	for assigned < drawCount {
		quotas[0].count++
		assigned++
	}
	for assigned > drawCount && quotas[0].count > 1 {
		quotas[0].count--
		assigned--
	}
	return quotas
}

// categoryPool returns the domain numbers a category's draws sample from.
// Mixed classes widen the pool to the whole relevant dimension.
func categoryPool(u *triple.Universe, c tripleCategory) []int {
	low, mid, high := bands(u)
	var numbers []int
	switch c.band {
	case "low":
		numbers = low
	case "mid":
		numbers = mid
	case "high":
		numbers = high
	default:
		numbers = append(append(append([]int(nil), low...), mid...), high...)
	}

	if c.parity == "mixed" {
		return numbers
	}
	wantOdd := c.parity == "odd"
	pool := make([]int, 0, len(numbers)/2+1)
	for _, n := range numbers {
		if (n%2 != 0) == wantOdd {
			pool = append(pool, n)
		}
	}
	return pool
}

// drawFromPool samples a draw from the category pool, topping up from the
// whole domain when the pool is too small.
func drawFromPool(u *triple.Universe, rng *rand.Rand, pool []int) triple.Draw {
	count := triple.DrawSize
	if count > len(pool) {
		count = len(pool)
	}
	picked := make([]int, 0, triple.DrawSize)
	for _, idx := range rng.Perm(len(pool))[:count] {
		picked = append(picked, pool[idx])
	}
	if len(picked) < triple.DrawSize {
		picked = topUp(u, rng, picked)
	}
	sort.Ints(picked)
	var d triple.Draw
	copy(d[:], picked)
	return d
}
