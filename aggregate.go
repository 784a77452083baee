package cssjit

import "sort"

// ClassSet is the deduplicated union of every scanner result for a marker.
// Literals compare by exact string equality: no case folding, no trimming,
// "a b" and "a  b" stay distinct. Iteration order is ascending byte order.
type ClassSet struct {
	Marker    Marker
	Namespace string // Marker namespace after fallback substitution

	all         map[string]struct{}
	byCategory  map[Category]map[string]struct{}
	occurrences map[Category]int
}

// Aggregate merges results into a ClassSet associated with marker.
func Aggregate(marker Marker, results CategoryResults) *ClassSet {
	set := &ClassSet{
		Marker:      marker,
		Namespace:   ResolveNamespace(marker.Namespace),
		all:         make(map[string]struct{}),
		byCategory:  make(map[Category]map[string]struct{}),
		occurrences: make(map[Category]int),
	}
	for c, seqs := range results {
		set.add(c, seqs)
	}
	return set
}

// Union flattens sequences into their deduplicated, sorted union.
func Union(seqs ...[][]string) []string {
	seen := make(map[string]struct{})
	for _, group := range seqs {
		for _, seq := range group {
			for _, v := range seq {
				seen[v] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func (s *ClassSet) add(c Category, seqs [][]string) {
	members, ok := s.byCategory[c]
	if !ok {
		members = make(map[string]struct{})
		s.byCategory[c] = members
	}
	for _, seq := range seqs {
		for _, v := range seq {
			members[v] = struct{}{}
			s.all[v] = struct{}{}
			s.occurrences[c]++
		}
	}
}

// Len returns the number of distinct literals.
func (s *ClassSet) Len() int {
	return len(s.all)
}

// Contains reports whether the exact literal was discovered.
func (s *ClassSet) Contains(class string) bool {
	_, ok := s.all[class]
	return ok
}

// Classes returns the distinct literals in ascending order.
func (s *ClassSet) Classes() []string {
	return sortedKeys(s.all)
}

// CategoryClasses returns the distinct literals one category found.
func (s *ClassSet) CategoryClasses(c Category) []string {
	return sortedKeys(s.byCategory[c])
}

// Occurrences returns how many literals a category found, duplicates included.
func (s *ClassSet) Occurrences(c Category) int {
	return s.occurrences[c]
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
