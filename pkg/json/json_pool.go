// Package json provides the JSON encoding used for every generated artifact,
// backed by goccy/go-json with pooled buffers.
//
// Output is stable: map keys are sorted, HTML characters are not escaped and
// every document ends with exactly one newline.
package json

import (
	"bytes"
	"io"
	"sync"

	gojson "github.com/goccy/go-json"
)

// Indent is the indentation used for rendered documents
const Indent = "  "

// RawMessage is a raw encoded JSON value
type RawMessage = gojson.RawMessage

// maxPooledBuffer caps the size of buffers returned to the pool
const maxPooledBuffer = 1024 * 1024

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a pooled bytes.Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}

// NewEncoder returns an encoder configured for artifact output
func NewEncoder(w io.Writer, indent bool) *gojson.Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", Indent)
	}
	return enc
}

// Marshal encodes v compactly
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal decodes data into v
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalDocument encodes v as an indented document terminated by a newline
func MarshalDocument(v interface{}) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := NewEncoder(buf, true).Encode(v); err != nil {
		return nil, err
	}

	// Create a copy since we're returning the buffer to the pool
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
