package apperr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := New(KindNetwork, "failed to get balance")
	wrapped := fmt.Errorf("refresh: %w", base)

	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNetwork))
	assert.False(t, Is(wrapped, KindValidation))
	assert.False(t, Is(nil, KindNetwork))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, KindNetwork, "failed to submit transaction")

	assert.Equal(t, "failed to submit transaction: connection refused", err.Error())
	assert.Equal(t, cause, errors.Cause(err))
	assert.Nil(t, Wrap(nil, KindNetwork, "nothing"))
}

func TestWithSignature(t *testing.T) {
	err := WithSignature(New(KindConfirmationTimeout, "confirmation timed out"), "5sig")

	assert.Equal(t, KindConfirmationTimeout, KindOf(err))
	assert.Equal(t, "5sig", SignatureOf(err))
	assert.Empty(t, SignatureOf(New(KindValidation, "x")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "INSUFFICIENT_FUNDS", KindInsufficientFunds.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}
