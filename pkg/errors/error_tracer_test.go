package errors

import (
	stderrors "errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracer_WrapCapturesStack(t *testing.T) {
	cause := stderrors.New("boom")
	tracer := NewTracer("trade_publish_error").Wrap(cause)

	assert.Equal(t, "trade_publish_error", tracer.Error())
	assert.NotNil(t, tracer.StackTrace(), "plain errors gain a stack when wrapped")
	assert.True(t, stderrors.Is(tracer, cause))
}

func TestTracerFromError_KeepsExistingStack(t *testing.T) {
	cause := pkgerrors.New("already traced")
	tracer := TracerFromError(cause)

	assert.Equal(t, "already traced", tracer.Error())
	require.NotNil(t, tracer.StackTrace())
	assert.Same(t, cause, tracer.Unwrap(), "an error with a stack is not re-wrapped")
}

func TestTracer_NoCause(t *testing.T) {
	tracer := NewTracer("pending")
	assert.Nil(t, tracer.Unwrap())
	assert.Nil(t, tracer.StackTrace())
}

func TestErrorDetails(t *testing.T) {
	err := NewErrorDetails("must be positive", string(OrderInvalidPrice), "price")

	assert.Equal(t, "price: must be positive", err.Error())
	assert.True(t, ErrorCodeEquals(err, string(OrderInvalidPrice)))
	assert.False(t, ErrorCodeEquals(err, string(OrderNotFound)))
	assert.False(t, ErrorCodeEquals(stderrors.New("other"), string(OrderInvalidPrice)))

	bare := NewErrorDetails("book crossed", string(BookCrossed), "")
	assert.Equal(t, "book crossed", bare.Error())
}
