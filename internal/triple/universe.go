package triple

import "fmt"

// Universe is the read-only set of all triples over one number domain. It is
// computed once and injected by reference into every component that needs it;
// nothing mutates it after construction.
type Universe struct {
	min int
	max int
	all []Triple
	set Set
}

// NewUniverse enumerates all C(max-min+1, 3) triples over [min, max].
func NewUniverse(min, max int) (*Universe, error) {
	if min < 1 {
		return nil, fmt.Errorf("domain minimum must be >= 1, got %d", min)
	}
	if max-min+1 < DrawSize {
		return nil, fmt.Errorf("domain [%d, %d] is smaller than one draw", min, max)
	}

	span := max - min + 1
	count := span * (span - 1) * (span - 2) / 6
	all := make([]Triple, 0, count)
	set := make(Set, count)
	for a := min; a <= max-2; a++ {
		for b := a + 1; b <= max-1; b++ {
			for c := b + 1; c <= max; c++ {
				t := Triple{a, b, c}
				all = append(all, t)
				set[t] = struct{}{}
			}
		}
	}
	return &Universe{min: min, max: max, all: all, set: set}, nil
}

// DefaultUniverse builds the process-wide [DomainMin, DomainMax] universe.
func DefaultUniverse() *Universe {
	u, err := NewUniverse(DomainMin, DomainMax)
	if err != nil {
		// The default bounds are compile-time constants; this cannot fail.
		panic(err)
	}
	return u
}

// Min returns the inclusive lower domain bound.
func (u *Universe) Min() int { return u.min }

// Max returns the inclusive upper domain bound.
func (u *Universe) Max() int { return u.max }

// Size returns the number of triples in the universe.
func (u *Universe) Size() int { return len(u.all) }

// All returns the triples in ascending enumeration order. Callers must not
// modify the returned slice.
func (u *Universe) All() []Triple { return u.all }

// Contains reports whether t belongs to the universe.
func (u *Universe) Contains(t Triple) bool {
	_, ok := u.set[t]
	return ok
}

// Missing returns the universe triples absent from covered.
func (u *Universe) Missing(covered Set) []Triple {
	out := make([]Triple, 0, len(u.all)-len(covered))
	for _, t := range u.all {
		if _, ok := covered[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
