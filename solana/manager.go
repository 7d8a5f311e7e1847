package solana

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/client"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/keystore"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

const (
	solFeeLamports = 5000 // Fee in lamports (0.000005 SOL)

	DefaultConfirmTimeout = 30 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
)

var (
	// FeeReserve approximates the minimum network fee kept aside by the local balance check
	FeeReserve = common.LamportsToSOL(solFeeLamports)

	// DefaultFaucetCap is the largest airdrop accepted, in SOL
	DefaultFaucetCap = decimal.NewFromInt(2)
)

// Ledger is the network capability the wallet consumes.
// *client.SolanaClient implements it.
type Ledger interface {
	GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error)
	GetLatestReference(ctx context.Context) (client.Reference, error)
	Submit(ctx context.Context, rawTx []byte) (solana.Signature, error)
	Confirm(ctx context.Context, sig solana.Signature, ref client.Reference) (client.Status, error)
	RequestTestFunds(ctx context.Context, address solana.PublicKey, lamports uint64) (solana.Signature, error)
}

// Options tunes confirmation waits and the faucet
type Options struct {
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	FaucetCap      decimal.Decimal
}

// Manager runs wallet operations against the address book and the ledger
type Manager struct {
	book   *keystore.AddressBook
	ledger Ledger
	opts   Options
}

// NewManager creates a Manager. Zero option values take their defaults.
func NewManager(book *keystore.AddressBook, ledger Ledger, opts Options) *Manager {
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = DefaultConfirmTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if !opts.FaucetCap.IsPositive() {
		opts.FaucetCap = DefaultFaucetCap
	}

	return &Manager{
		book:   book,
		ledger: ledger,
		opts:   opts,
	}
}

// Keypairs returns all records in insertion order
func (m *Manager) Keypairs() []model.KeypairRecord {
	return m.book.List()
}

// Keypair returns one record
func (m *Manager) Keypair(id model.RecordID) (model.KeypairRecord, error) {
	rec, ok := m.book.Get(id)
	if !ok {
		return model.KeypairRecord{}, apperr.NotFound(id.String())
	}
	return rec, nil
}

// DeleteKeypair removes a record; unknown ids are ignored
func (m *Manager) DeleteKeypair(id model.RecordID) error {
	return m.book.Delete(id)
}

// ToggleVisibility flips the showPrivate flag; unknown ids are ignored
func (m *Manager) ToggleVisibility(id model.RecordID) error {
	return m.book.ToggleVisibility(id)
}

// TotalBalance sums the cached balances of all records
func (m *Manager) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range m.book.List() {
		total = total.Add(rec.Balance)
	}
	return total
}

// ledgerError classifies a Ledger failure: refusals are rejections, everything else is network
func ledgerError(err error, message string) error {
	if errors.Is(err, client.ErrRejected) {
		return apperr.Wrap(err, apperr.KindLedgerRejection, message)
	}
	return apperr.Wrap(err, apperr.KindNetwork, message)
}

// resultLabel turns an operation result into a metrics label
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	return strings.ToLower(apperr.KindOf(err).String())
}
