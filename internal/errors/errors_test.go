package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ExternalServiceError("smartsheet", fmt.Errorf("connection refused"))
	wrapped := Wrapf(base, "fetch sheet %d", 42)

	assert.Equal(t, CodeExternalService, GetCode(wrapped))
	assert.Equal(t, "fetch sheet 42: smartsheet service error: connection refused", wrapped.Error())
	assert.True(t, Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := Wrap(cause, "context")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, Is(wrapped, cause))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestWithCodeAndAs(t *testing.T) {
	err := WithCode(CodeRecordInvalid, fmt.Errorf("row 3 invalid"))

	var appErr *AppError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, CodeRecordInvalid, appErr.Code)
	assert.Equal(t, "row 3 invalid", appErr.Message)

	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.Nil(t, WithCode(CodeInternalError, nil))
}
