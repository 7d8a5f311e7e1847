package solana

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/client"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

func offCurveAddress(t *testing.T) string {
	t.Helper()
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("off-curve")}, solana.SystemProgramID)
	require.NoError(t, err)
	return pda.String()
}

func TestTransfer_ValidationHappensBeforeNetwork(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	src := fundedKeypair(t, book, "1")
	dest := solana.NewWallet().PublicKey().String()

	tests := []struct {
		name string
		req  model.TransferRequest
		kind apperr.Kind
	}{
		{"missing source", model.TransferRequest{Destination: dest, Amount: "0.1"}, apperr.KindValidation},
		{"missing destination", model.TransferRequest{SourceID: src.ID, Amount: "0.1"}, apperr.KindValidation},
		{"zero amount", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "0"}, apperr.KindValidation},
		{"negative amount", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "-0.5"}, apperr.KindValidation},
		{"not a number", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "abc"}, apperr.KindValidation},
		{"below one lamport", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "0.0000000001"}, apperr.KindValidation},
		{"unknown source", model.TransferRequest{SourceID: "missing", Destination: dest, Amount: "0.1"}, apperr.KindNotFound},
		{"malformed destination", model.TransferRequest{SourceID: src.ID, Destination: "not-an-address", Amount: "0.1"}, apperr.KindValidation},
		{"off-curve destination", model.TransferRequest{SourceID: src.ID, Destination: offCurveAddress(t), Amount: "0.1"}, apperr.KindValidation},
		{"exceeds balance", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "2"}, apperr.KindInsufficientFunds},
		{"no room for fee", model.TransferRequest{SourceID: src.ID, Destination: dest, Amount: "0.999995"}, apperr.KindInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Transfer(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, apperr.KindOf(err), err.Error())
			assert.Empty(t, apperr.SignatureOf(err))
		})
	}

	assert.Empty(t, ledger.Calls)
}

func TestTransfer_InsufficientCachedBalance(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	src := fundedKeypair(t, book, "0.01")

	_, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.02",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInsufficientFunds))
	assert.Empty(t, ledger.Calls)
}

func TestTransfer_Confirmed(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{PollInterval: time.Millisecond})
	src := fundedKeypair(t, book, "1")
	from := solana.MustPublicKeyFromBase58(src.PublicKey)
	to := solana.NewWallet().PublicKey()

	var order []string
	var raw []byte
	ledger.On("GetLatestReference", mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "reference") }).
		Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order = append(order, "submit")
			raw = args.Get(1).([]byte)
		}).
		Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).
		Return(client.Status{Kind: client.StatusPending}, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).
		Return(client.Status{Kind: client.StatusSucceeded}, nil).Once()
	ledger.On("GetBalance", mock.Anything, from).Return(uint64(749_995_000), nil).Once()

	res, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: to.String(),
		Amount:      "0.25",
	})
	require.NoError(t, err)
	assert.Equal(t, testSig.String(), res.Signature)
	assert.Equal(t, model.OutcomeConfirmed, res.Outcome)
	assert.True(t, res.BalanceRefreshed)
	assert.Equal(t, "0.749995", cachedBalance(t, book, src.ID).String())
	assert.Equal(t, []string{"reference", "submit"}, order)

	// The submitted bytes are a transaction signed by the source over the fetched blockhash
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(t, err)
	assert.Equal(t, testRef.Blockhash, tx.Message.RecentBlockhash)
	assert.NoError(t, tx.VerifySignatures())
	require.Len(t, tx.Signatures, 1)
	assert.Contains(t, tx.Message.AccountKeys, from)
	assert.Contains(t, tx.Message.AccountKeys, to)
}

func TestTransfer_ConfirmationNeverResolves(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{ConfirmTimeout: 50 * time.Millisecond})
	src := fundedKeypair(t, book, "1")

	ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(client.Status{}, context.Canceled)

	started := time.Now()
	res, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	require.Error(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)

	assert.True(t, apperr.Is(err, apperr.KindConfirmationTimeout))
	assert.Equal(t, testSig.String(), apperr.SignatureOf(err))
	require.NotNil(t, res)
	assert.Equal(t, model.OutcomeTimedOut, res.Outcome)
	assert.Equal(t, testSig.String(), res.Signature)
	assert.False(t, res.BalanceRefreshed)

	// Unknown outcome: the cached balance is not touched
	assert.Equal(t, "1", cachedBalance(t, book, src.ID).String())
	ledger.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
}

func TestTransfer_PendingUntilTimeout(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{
		ConfirmTimeout: 50 * time.Millisecond,
		PollInterval:   5 * time.Millisecond,
	})
	src := fundedKeypair(t, book, "1")

	ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).Return(client.Status{Kind: client.StatusPending}, nil)

	res, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	assert.True(t, apperr.Is(err, apperr.KindConfirmationTimeout))
	assert.Equal(t, model.OutcomeTimedOut, res.Outcome)
	assert.Equal(t, "1", cachedBalance(t, book, src.ID).String())
}

func TestTransfer_CallerCancelsWhileWaiting(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{ConfirmTimeout: time.Minute, PollInterval: time.Minute})
	src := fundedKeypair(t, book, "1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).Return(client.Status{Kind: client.StatusPending}, nil)

	res, err := m.Transfer(ctx, model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	assert.True(t, apperr.Is(err, apperr.KindConfirmationTimeout))
	assert.Equal(t, testSig.String(), apperr.SignatureOf(err))
	assert.Equal(t, model.OutcomeTimedOut, res.Outcome)
}

func TestTransfer_TransientStatusErrorsKeepPolling(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{PollInterval: time.Millisecond})
	src := fundedKeypair(t, book, "1")

	ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).
		Return(client.Status{}, errors.New("connection reset by peer")).Twice()
	ledger.On("Confirm", mock.Anything, testSig, testRef).
		Return(client.Status{Kind: client.StatusSucceeded}, nil).Once()
	ledger.On("GetBalance", mock.Anything, mock.Anything).Return(uint64(899_995_000), nil).Once()

	res, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeConfirmed, res.Outcome)
	assert.Equal(t, "0.899995", cachedBalance(t, book, src.ID).String())
}

func TestTransfer_RejectedOnChain(t *testing.T) {
	tests := []struct {
		name   string
		status client.Status
		reason string
	}{
		{"instruction error", client.Status{Kind: client.StatusFailed, Err: "InstructionError: insufficient lamports"}, "insufficient lamports"},
		{"blockhash expired", client.Status{Kind: client.StatusExpired}, "block height exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ledger, book := newTestManager(t, Options{PollInterval: time.Millisecond})
			src := fundedKeypair(t, book, "1")

			ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
			ledger.On("Submit", mock.Anything, mock.Anything).Return(testSig, nil).Once()
			ledger.On("Confirm", mock.Anything, testSig, testRef).Return(tt.status, nil).Once()

			res, err := m.Transfer(context.Background(), model.TransferRequest{
				SourceID:    src.ID,
				Destination: solana.NewWallet().PublicKey().String(),
				Amount:      "0.1",
			})
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindLedgerRejection))
			assert.Contains(t, err.Error(), tt.reason)
			assert.Equal(t, testSig.String(), apperr.SignatureOf(err))
			assert.Equal(t, model.OutcomeRejected, res.Outcome)
			assert.Equal(t, "1", cachedBalance(t, book, src.ID).String())
			ledger.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
		})
	}
}

func TestTransfer_SubmissionFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"refused by node", fmt.Errorf("%w: Transaction simulation failed", client.ErrRejected), apperr.KindLedgerRejection},
		{"transport", errors.New("dial tcp: connection refused"), apperr.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ledger, book := newTestManager(t, Options{})
			src := fundedKeypair(t, book, "1")

			ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
			ledger.On("Submit", mock.Anything, mock.Anything).Return(solana.Signature{}, tt.err).Once()

			res, err := m.Transfer(context.Background(), model.TransferRequest{
				SourceID:    src.ID,
				Destination: solana.NewWallet().PublicKey().String(),
				Amount:      "0.1",
			})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Empty(t, apperr.SignatureOf(err))
			ledger.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransfer_ReferenceUnavailable(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{})
	src := fundedKeypair(t, book, "1")

	ledger.On("GetLatestReference", mock.Anything).Return(client.Reference{}, errors.New("i/o timeout")).Once()

	_, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
	ledger.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestTransfer_ConfirmedButRefreshFails(t *testing.T) {
	m, ledger, book := newTestManager(t, Options{PollInterval: time.Millisecond})
	src := fundedKeypair(t, book, "1")

	ledger.On("GetLatestReference", mock.Anything).Return(testRef, nil).Once()
	ledger.On("Submit", mock.Anything, mock.Anything).Return(testSig, nil).Once()
	ledger.On("Confirm", mock.Anything, testSig, testRef).Return(client.Status{Kind: client.StatusSucceeded}, nil).Once()
	ledger.On("GetBalance", mock.Anything, mock.Anything).Return(uint64(0), errors.New("rate limited")).Once()

	res, err := m.Transfer(context.Background(), model.TransferRequest{
		SourceID:    src.ID,
		Destination: solana.NewWallet().PublicKey().String(),
		Amount:      "0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeConfirmed, res.Outcome)
	assert.False(t, res.BalanceRefreshed)
	assert.Equal(t, "1", cachedBalance(t, book, src.ID).String())
}
