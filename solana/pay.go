package solana

import (
	"context"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/metrics"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

// Transfer sends SOL from one of the book's keypairs.
//
// Validation and signing happen locally; nothing touches the network until the
// transaction is fully built. Once submitted, the result always carries the
// signature, and errors after that point carry it too (apperr.SignatureOf).
// A confirmation timeout means the outcome is unknown: the transfer may still land.
func (m *Manager) Transfer(ctx context.Context, req model.TransferRequest) (*model.TransferResult, error) {
	res, err := m.transfer(ctx, req)
	metrics.Transfers.WithLabelValues(resultLabel(err)).Inc()
	return res, err
}

func (m *Manager) transfer(ctx context.Context, req model.TransferRequest) (*model.TransferResult, error) {
	// Presence and amount checks
	if strings.TrimSpace(req.SourceID.String()) == "" {
		return nil, apperr.Validation("source keypair is required")
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, apperr.Validation("destination address is required")
	}
	amount, err := common.ParseAmount(req.Amount)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid amount")
	}

	source, ok := m.book.Get(req.SourceID)
	if !ok {
		return nil, apperr.NotFound(req.SourceID.String())
	}

	// Optimistic check against the cached balance; the ledger has the final word
	required := amount.Add(FeeReserve)
	if !source.Balance.GreaterThan(required) {
		return nil, apperr.Newf(apperr.KindInsufficientFunds,
			"insufficient SOL balance. Have: %s SOL, need more than %s SOL (amount + %s SOL fee)",
			common.FormatSOL(source.Balance), common.FormatSOL(required), common.FormatSOL(FeeReserve))
	}

	toPubkey, err := codec.ValidateAddress(destination)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid destination address")
	}

	// Build the instruction from the stored secret
	lamports, err := common.SOLToLamports(amount)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid amount")
	}

	secret, err := codec.DecodeSecret(source.PrivateKey)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "stored private key is invalid")
	}
	// Always clear private key from memory
	defer clear(secret)

	fromPubkey, err := codec.DeriveKeypair(secret)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "stored private key is invalid")
	}
	if fromPubkey.String() != source.PublicKey {
		return nil, apperr.Validation("private key does not match address")
	}

	instruction := system.NewTransferInstruction(lamports, fromPubkey, toPubkey).Build()

	// Reference, sign, submit: no pause between fetching the blockhash and sending
	ref, err := m.ledger.GetLatestReference(ctx)
	if err != nil {
		return nil, ledgerError(err, "failed to get recent blockhash")
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		ref.Blockhash,
		solana.TransactionPayer(fromPubkey),
	)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "failed to create transaction")
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(fromPubkey) {
			return &secret
		}
		return nil
	}); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "failed to sign transaction")
	}

	rawTx, err := tx.MarshalBinary()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "failed to serialize transaction")
	}

	sig, err := m.ledger.Submit(ctx, rawTx)
	if err != nil {
		return nil, ledgerError(err, "failed to send transaction")
	}

	log.Info().
		Str("id", source.ID.String()).
		Str("to", toPubkey.String()).
		Str("sol", common.FormatSOL(amount)).
		Str("signature", sig.String()).
		Msg("Transfer submitted")

	return m.settle(ctx, source.ID, sig, ref)
}
