package errors

// ErrorContext holds the key/value details attached to an error, in the
// order they were added. Adding an existing key replaces its value in place.
type ErrorContext []Field

// Field is one context entry.
type Field struct {
	Key   string
	Value any
}

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// with returns a copy of c holding key=value.
func (c ErrorContext) with(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Key: key, Value: value})
}
