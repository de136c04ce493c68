package core

// ExecuteContext is the capability surface a host injects into a single node
// invocation: parameter values as configured in the workflow editor,
// credentials from the host secret store, the items flowing in and the
// wrapper for items flowing out.
type ExecuteContext interface {
	// Parameter returns the raw value of a node parameter. The second
	// return reports whether the parameter was configured at all.
	Parameter(name string) (any, bool)
	// Credentials returns the decrypted credentials of the given kind.
	Credentials(kind string) (*Credentials, error)
	// InputItems returns the items flowing into the node, in order.
	InputItems() []Item
	// WrapItems converts raw payloads into output items, preserving order.
	WrapItems(payloads []map[string]any) []Item
}

// StringParameter reads a parameter as a string, returning fallback when it
// is absent or of another type.
func StringParameter(ec ExecuteContext, name string, fallback string) string {
	val, ok := ec.Parameter(name)
	if !ok {
		return fallback
	}

	s, ok := val.(string)
	if !ok {
		return fallback
	}

	return s
}

// BoolParameter reads a parameter as a bool, returning fallback when it is
// absent or of another type.
func BoolParameter(ec ExecuteContext, name string, fallback bool) bool {
	val, ok := ec.Parameter(name)
	if !ok {
		return fallback
	}

	b, ok := val.(bool)
	if !ok {
		return fallback
	}

	return b
}

// IntParameter reads a parameter as an int, folding the numeric kinds a
// JSON decoder or a host runtime may deliver.
func IntParameter(ec ExecuteContext, name string, fallback int) int {
	val, ok := ec.Parameter(name)
	if !ok {
		return fallback
	}

	i, ok := toInt(val)
	if !ok {
		return fallback
	}

	return i
}

// OptionsParameter reads a collection parameter. Absent or malformed values
// yield an empty collection, so callers can chain accessors directly.
func OptionsParameter(ec ExecuteContext, name string) Options {
	val, ok := ec.Parameter(name)
	if !ok {
		return Options{}
	}

	switch t := val.(type) {
	case Options:
		return t
	case map[string]any:
		return Options(t)
	}

	return Options{}
}

// Options is the decoded value of a collection parameter.
type Options map[string]any

// String returns the string under key, or fallback.
func (o Options) String(key string, fallback string) string {
	if s, ok := o[key].(string); ok {
		return s
	}

	return fallback
}

// Bool returns the bool under key, or fallback.
func (o Options) Bool(key string, fallback bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}

	return fallback
}

// Int returns the number under key as an int, or fallback.
func (o Options) Int(key string, fallback int) int {
	if i, ok := toInt(o[key]); ok {
		return i
	}

	return fallback
}

func toInt(val any) (int, bool) {
	switch t := val.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		return int(t), true
	case float64:
		return int(t), true
	}

	return 0, false
}
