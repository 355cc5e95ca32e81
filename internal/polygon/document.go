package polygon

// Document is a loosely-typed view over a decoded Polygon JSON object.
// Field accessors report ok == false for absent or mistyped values so
// formatters can fall back to a placeholder instead of faulting.
type Document map[string]any

// Str returns the string value for key.
func (d Document) Str(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Num returns the numeric value for key.
func (d Document) Num(key string) (float64, bool) {
	v, ok := d[key].(float64)
	return v, ok
}

// Bool returns the boolean value for key.
func (d Document) Bool(key string) (bool, bool) {
	v, ok := d[key].(bool)
	return v, ok
}

// Object returns the nested object for key.
func (d Document) Object(key string) (Document, bool) {
	v, ok := d[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(v), true
}

// Array returns the object sequence for key. Non-object elements are skipped.
func (d Document) Array(key string) ([]Document, bool) {
	raw, ok := d[key].([]any)
	if !ok {
		return nil, false
	}
	docs := make([]Document, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			docs = append(docs, Document(obj))
		}
	}
	return docs, true
}

// Status returns the response status field, or "Unknown" when absent.
func (d Document) Status() string {
	if status, ok := d.Str("status"); ok && status != "" {
		return status
	}
	return "Unknown"
}

// ErrorMessage returns the upstream error description, or a default when absent.
func (d Document) ErrorMessage() string {
	if msg, ok := d.Str("error"); ok && msg != "" {
		return msg
	}
	return "No additional info"
}
