package resolver

// Reference a named object type resolved for one set of type arguments.
type Reference struct {
	// Key the cache key: qualified name followed by the argument names
	Key string

	// Name the declared (qualified) name
	Name string

	// TypeArguments the argument names that went into Key
	TypeArguments []string

	Description string
	Properties  []Property

	// AdditionalProperty the value type of an index signature
	AdditionalProperty *Property

	// TypeArgument the wrapped type of a status wrapper
	TypeArgument *TypeExpression
}

// Property returns the property named name.
func (r *Reference) Property(name string) (Property, bool) {
	for _, p := range r.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Table the completed references of a run, in completion order.
type Table struct {
	entries map[string]*Reference
	order   []string
}

func newTable() *Table {
	return &Table{entries: make(map[string]*Reference)}
}

// Get returns the completed reference stored under key.
func (t *Table) Get(key string) (*Reference, bool) {
	ref, ok := t.entries[key]
	return ref, ok
}

// Keys returns the stored keys in completion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	return keys
}

func (t *Table) Len() int {
	return len(t.order)
}

// Range calls fn for each reference in completion order.
func (t *Table) Range(fn func(ref *Reference) error) error {
	for _, key := range t.order {
		if err := fn(t.entries[key]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) put(ref *Reference) {
	if _, exists := t.entries[ref.Key]; !exists {
		t.order = append(t.order, ref.Key)
	}
	t.entries[ref.Key] = ref
}

// truncate drops the entries completed after the first n and returns their keys.
func (t *Table) truncate(n int) []string {
	if n >= len(t.order) {
		return nil
	}
	dropped := append([]string(nil), t.order[n:]...)
	for _, key := range dropped {
		delete(t.entries, key)
	}
	t.order = t.order[:n]
	return dropped
}
