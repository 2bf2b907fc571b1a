// Package triple owns the number domain, the triple universe and the pure
// coverage extraction functions every other component builds on.
package triple

import (
	"fmt"
	"sort"
)

const (
	// DomainMin and DomainMax bound the default number domain.
	DomainMin = 1
	DomainMax = 60

	// DrawSize is the number of distinct numbers in one draw.
	DrawSize = 6

	// TriplesPerDraw is C(DrawSize, 3): how many triples one draw covers.
	TriplesPerDraw = 20
)

// Triple is an unordered selection of 3 distinct numbers, stored ascending.
type Triple [3]int

// Draw is an unordered selection of DrawSize distinct numbers, stored ascending.
type Draw [DrawSize]int

// Set is a deduplicated collection of triples.
type Set map[Triple]struct{}

// NewTriple validates and canonicalizes three numbers from the [min, max] domain.
func NewTriple(min, max, a, b, c int) (Triple, error) {
	nums := [3]int{a, b, c}
	sort.Ints(nums[:])
	for _, n := range nums {
		if n < min || n > max {
			return Triple{}, fmt.Errorf("triple number %d outside domain [%d, %d]", n, min, max)
		}
	}
	if nums[0] == nums[1] || nums[1] == nums[2] {
		return Triple{}, fmt.Errorf("triple %v contains duplicate numbers", nums)
	}
	return Triple(nums), nil
}

// NewDraw validates and canonicalizes six numbers from the [min, max] domain.
func NewDraw(min, max int, numbers ...int) (Draw, error) {
	if len(numbers) != DrawSize {
		return Draw{}, fmt.Errorf("draw requires %d numbers, got %d", DrawSize, len(numbers))
	}
	var d Draw
	copy(d[:], numbers)
	sort.Ints(d[:])
	for i, n := range d {
		if n < min || n > max {
			return Draw{}, fmt.Errorf("draw number %d outside domain [%d, %d]", n, min, max)
		}
		if i > 0 && d[i-1] == n {
			return Draw{}, fmt.Errorf("draw %v contains duplicate number %d", d, n)
		}
	}
	return d, nil
}

// Contains reports whether n is one of the draw's numbers.
func (d Draw) Contains(n int) bool {
	for _, x := range d {
		if x == n {
			return true
		}
	}
	return false
}

// TriplesOfDraw returns the TriplesPerDraw 3-subsets of a draw, ascending each.
func TriplesOfDraw(d Draw) []Triple {
	out := make([]Triple, 0, TriplesPerDraw)
	for i := 0; i < DrawSize-2; i++ {
		for j := i + 1; j < DrawSize-1; j++ {
			for k := j + 1; k < DrawSize; k++ {
				out = append(out, Triple{d[i], d[j], d[k]})
			}
		}
	}
	return out
}

// CoverageOfDraws returns the union of triples covered by the draws.
func CoverageOfDraws(draws []Draw) Set {
	covered := make(Set, len(draws)*TriplesPerDraw)
	for _, d := range draws {
		for _, t := range TriplesOfDraw(d) {
			covered[t] = struct{}{}
		}
	}
	return covered
}
