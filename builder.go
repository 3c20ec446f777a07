package mustache

// MapBuilder constructs a KindMap Value fluently, for callers assembling a
// render context by hand rather than via Encode.
type MapBuilder struct {
	bindings map[string]Value
}

// NewMap starts an empty MapBuilder.
func NewMap() *MapBuilder {
	return &MapBuilder{bindings: map[string]Value{}}
}

// Set binds key to an already-constructed Value, returning the builder for
// chaining.
func (b *MapBuilder) Set(key string, v Value) *MapBuilder {
	b.bindings[key] = v
	return b
}

// Str binds key to a string Value.
func (b *MapBuilder) Str(key, s string) *MapBuilder {
	return b.Set(key, Str(s))
}

// Bool binds key to a boolean Value.
func (b *MapBuilder) Bool(key string, v bool) *MapBuilder {
	return b.Set(key, Bool(v))
}

// List binds key to a list Value.
func (b *MapBuilder) List(key string, items ...Value) *MapBuilder {
	return b.Set(key, List(items...))
}

// Map binds key to a nested map Value built by fn.
func (b *MapBuilder) Map(key string, fn func(*MapBuilder)) *MapBuilder {
	nested := NewMap()
	fn(nested)
	return b.Set(key, nested.Build())
}

// Lambda binds key to a callable Value.
func (b *MapBuilder) Lambda(key string, fn Lambda) *MapBuilder {
	return b.Set(key, NewLambda(fn))
}

// Build returns the assembled Map Value.
func (b *MapBuilder) Build() Value {
	return Map(b.bindings)
}
