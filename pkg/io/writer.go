package io

import (
	"encoding/json"
	stdio "io"
)

// JSONWriter writes results as JSON lines.
type JSONWriter struct {
	enc    *json.Encoder
	closer stdio.Closer
}

// NewJSONWriter creates a writer emitting one JSON object per result. If w
// also implements io.Closer it is closed by Close.
func NewJSONWriter(w stdio.Writer) *JSONWriter {
	jw := &JSONWriter{enc: json.NewEncoder(w)}
	if c, ok := w.(stdio.Closer); ok {
		jw.closer = c
	}
	return jw
}

// Write outputs a single result.
func (w *JSONWriter) Write(result Result) error {
	return w.enc.Encode(result)
}

// Close releases resources.
func (w *JSONWriter) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
