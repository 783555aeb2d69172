package grid

// Set is an occupancy set keyed by coordinate.
type Set map[Coordinate]struct{}

// NewSet builds a set from the given coordinates.
func NewSet(coords ...Coordinate) Set {
	s := make(Set, len(coords))
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add marks c as occupied.
func (s Set) Add(c Coordinate) {
	s[c] = struct{}{}
}

// Has reports whether c is occupied.
func (s Set) Has(c Coordinate) bool {
	_, ok := s[c]
	return ok
}

// NearestFree returns start when it is free, otherwise the first free cell on
// the smallest Chebyshev ring around start, up to maxRadius. Within a ring the
// traversal is column offset first, then row offset, both ascending.
func NearestFree(start Coordinate, occupied Set, maxRadius int) (Coordinate, bool) {
	if !start.Valid() {
		return Coordinate{}, false
	}
	if !occupied.Has(start) {
		return start, true
	}
	for r := 1; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if absInt(dx) != r && absInt(dy) != r {
					continue
				}
				candidate, ok := New(start.Column+dx, start.Row+dy)
				if !ok {
					continue
				}
				if !occupied.Has(candidate) {
					return candidate, true
				}
			}
		}
	}
	return Coordinate{}, false
}
