package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeWrite, "nothing to wrap"))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeConfig, "bad id")
	outer := Wrap(inner, ErrorTypeConflict, "collision")

	require.NotNil(t, outer)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.Same(t, inner, outer.Unwrap())
	assert.True(t, IsType(outer, ErrorTypeConflict))
	assert.False(t, IsType(outer, ErrorTypeConfig))
}

func TestErrorMessageOrdersDetails(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, ErrorTypeWrite, "failed to write schema file").
		WithDetail("path", "/tmp/x.json").
		WithDetail("connector", "mysql")

	assert.Equal(t,
		"write: failed to write schema file (connector=mysql, path=/tmp/x.json): unexpected EOF",
		err.Error())
}

func TestTypeOfThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", Newf(ErrorTypeUsage, "expected %d arguments, got %d", 5, 4))

	assert.Equal(t, ErrorTypeUsage, TypeOf(err))
	assert.Equal(t, ErrorTypeInternal, TypeOf(io.EOF))
	assert.Contains(t, err.Error(), "expected 5 arguments, got 4")
}

func TestCaptureStack(t *testing.T) {
	err := New(ErrorTypeInternal, "boom")
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestCaptureStack")
}
