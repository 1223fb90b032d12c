package util

// Envelope is the JSON object every handler responds with.
type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Data wraps a single payload under key.
func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// With sets key on a copy of e.
func (e Envelope) With(key string, value any) Envelope {
	out := make(Envelope, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[key] = value
	return out
}
