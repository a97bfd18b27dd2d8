package table

// HeaderSet is an ordered set of flattened keys. Insertion order is
// first-encountered order across all records and defines column order in
// the final matrix.
type HeaderSet struct {
	keys []string
	seen map[string]struct{}
}

// NewHeaderSet returns an empty header set.
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{seen: make(map[string]struct{})}
}

// Add inserts key if absent; a key already present keeps its position.
func (s *HeaderSet) Add(key string) {
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
}

// Keys returns the keys in insertion order.
func (s *HeaderSet) Keys() []string {
	return s.keys
}

// Len returns the number of distinct keys.
func (s *HeaderSet) Len() int {
	return len(s.keys)
}
