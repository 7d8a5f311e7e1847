package solana

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
)

func TestRefreshBalance(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	rec := fundedKeypair(t, book, "0")
	address := solana.MustPublicKeyFromBase58(rec.PublicKey)

	ledger.On("GetBalance", mock.Anything, address).Return(uint64(1_234_567_890), nil).Once()

	balance, err := m.RefreshBalance(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.23456789", balance.String())
	assert.Equal(t, "1.23456789", cachedBalance(t, book, rec.ID).String())
}

func TestRefreshBalance_FailureKeepsCachedValue(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	rec := fundedKeypair(t, book, "0.75")

	ledger.On("GetBalance", mock.Anything, mock.Anything).Return(uint64(0), errors.New("connection refused")).Once()

	_, err := m.RefreshBalance(context.Background(), rec.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
	assert.Equal(t, "0.75", cachedBalance(t, book, rec.ID).String())
}

func TestRefreshBalance_UnknownKeypair(t *testing.T) {
	m, ledger, _ := newTestManager(t, Options{})

	_, err := m.RefreshBalance(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, ledger.Calls)
}

func TestRefreshBalance_DeletedWhileInFlight(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	rec := fundedKeypair(t, book, "0")

	ledger.On("GetBalance", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			require.NoError(t, book.Delete(rec.ID))
		}).
		Return(uint64(5_000_000_000), nil).Once()

	_, err := m.RefreshBalance(context.Background(), rec.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, ok := book.Get(rec.ID)
	assert.False(t, ok)
}
