package grid

// AttributeSet maps attribute names to scalar arrays, preserving insertion
// order for iteration. Setting an existing name replaces the array in place;
// it keeps its original position in the iteration order.
type AttributeSet struct {
	names  []string
	arrays map[string][]float64
}

// NewAttributeSet returns an empty attribute set.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{arrays: make(map[string][]float64)}
}

// Set stores an array under the given name, replacing any existing array.
func (s *AttributeSet) Set(name string, data []float64) {
	if _, exists := s.arrays[name]; !exists {
		s.names = append(s.names, name)
	}
	s.arrays[name] = data
}

// Get returns the named array and whether it exists.
func (s *AttributeSet) Get(name string) ([]float64, bool) {
	data, ok := s.arrays[name]
	return data, ok
}

// Has reports whether the named array exists.
func (s *AttributeSet) Has(name string) bool {
	_, ok := s.arrays[name]
	return ok
}

// Names returns the attribute names in insertion order. The returned slice
// is a copy.
func (s *AttributeSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of attributes.
func (s *AttributeSet) Len() int { return len(s.names) }

// Delete removes the named array if present.
func (s *AttributeSet) Delete(name string) {
	if _, ok := s.arrays[name]; !ok {
		return
	}
	delete(s.arrays, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}
