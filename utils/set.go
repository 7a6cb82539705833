package utils

// OrderedSet tracks distinct strings and remembers the order they were first added.
// It is not safe for concurrent use.
type OrderedSet struct {
	seen  map[string]struct{}
	order []string
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add returns true if s was newly added, false if already present.
func (o *OrderedSet) Add(s string) bool {
	if _, exists := o.seen[s]; exists {
		return false
	}
	o.seen[s] = struct{}{}
	o.order = append(o.order, s)
	return true
}

// Values returns a copy of the values in insertion order.
func (o *OrderedSet) Values() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}
