package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapWithCodeKeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := WrapWithCode(cause, CodeExtractionFailed, "failed to extract post")

	assert.True(t, IsExtractionFailed(err))
	assert.False(t, IsInvalidInput(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to extract post: connection reset", err.Error())
	assert.Equal(t, CodeExtractionFailed, GetCode(err))
	assert.Equal(t, "failed to extract post", GetMessage(err))
}

func TestCodeMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", InvalidInput("Invalid Instagram URL"))

	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, "handler: Invalid Instagram URL", err.Error())
	assert.Equal(t, "Invalid Instagram URL", GetMessage(err))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "msg"))
	assert.NoError(t, WrapWithCode(nil, CodeNotFound, "msg"))
}

func TestUncodedErrorMatchesNothing(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "outer")

	assert.False(t, IsNotFound(err))
	assert.False(t, IsExtractionFailed(err))
	assert.Equal(t, "", GetCode(err))
	assert.Equal(t, "plain", GetMessage(stderrors.New("plain")))
}
