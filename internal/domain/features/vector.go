package features

// Vector is an ordered set of named numeric features. Insertion order is
// preserved so the model sees columns exactly as it declared them.
type Vector struct {
	names  []string
	values map[string]float64
}

// NewVector creates an empty vector with room for n features.
func NewVector(n int) *Vector {
	return &Vector{
		names:  make([]string, 0, n),
		values: make(map[string]float64, n),
	}
}

// Set appends a named feature, or overwrites its value when already present.
func (v *Vector) Set(name string, value float64) {
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Get returns a feature value by name.
func (v *Vector) Get(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Names returns the feature names in insertion order.
func (v *Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Values returns the feature values in insertion order.
func (v *Vector) Values() []float64 {
	out := make([]float64, len(v.names))
	for i, name := range v.names {
		out[i] = v.values[name]
	}
	return out
}

// Len returns the number of features in the vector.
func (v *Vector) Len() int {
	return len(v.names)
}
