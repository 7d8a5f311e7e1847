package solana

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/metrics"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

// RequestFunds asks the test-network faucet to credit a keypair.
// Amounts above the faucet cap are rejected before any network call.
// Confirmation follows the same timeout rules as Transfer.
func (m *Manager) RequestFunds(ctx context.Context, id model.RecordID, amount string) (*model.TransferResult, error) {
	res, err := m.requestFunds(ctx, id, amount)
	metrics.Airdrops.WithLabelValues(resultLabel(err)).Inc()
	return res, err
}

func (m *Manager) requestFunds(ctx context.Context, id model.RecordID, amount string) (*model.TransferResult, error) {
	sol, err := common.ParseAmount(amount)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid amount")
	}
	if sol.GreaterThan(m.opts.FaucetCap) {
		return nil, apperr.Validation("airdrop amount %s SOL exceeds the %s SOL limit",
			common.FormatSOL(sol), common.FormatSOL(m.opts.FaucetCap))
	}

	rec, ok := m.book.Get(id)
	if !ok {
		return nil, apperr.NotFound(id.String())
	}
	address, err := codec.ParseAddress(rec.PublicKey)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "stored address is invalid")
	}

	lamports, err := common.SOLToLamports(sol)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid amount")
	}

	// The faucet signs on its side; the reference only bounds how long to wait
	ref, err := m.ledger.GetLatestReference(ctx)
	if err != nil {
		return nil, ledgerError(err, "failed to get recent blockhash")
	}

	sig, err := m.ledger.RequestTestFunds(ctx, address, lamports)
	if err != nil {
		return nil, ledgerError(err, "failed to request airdrop")
	}

	log.Info().
		Str("id", id.String()).
		Str("sol", common.FormatSOL(sol)).
		Str("signature", sig.String()).
		Msg("Airdrop requested")

	return m.settle(ctx, id, sig, ref)
}
