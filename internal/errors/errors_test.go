package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

func TestWrapKeepsChain(t *testing.T) {
	wrapped := Wrap(Wrap(errSentinel, "inner"), "outer")

	assert.True(t, Is(wrapped, errSentinel))
	assert.Equal(t, "outer: inner: sentinel", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", WithStack(errSentinel)), "TestWrapKeepsChain")
	assert.NoError(t, Wrap(nil, "ignored"))
}

type codeError struct{ code string }

func (e *codeError) Error() string { return e.code }

func TestAsFindsWrappedType(t *testing.T) {
	var target *codeError
	assert.True(t, As(Wrap(&codeError{code: "X"}, "ctx"), &target))
	assert.Equal(t, "X", target.code)
	assert.False(t, As(errSentinel, &target))
}
