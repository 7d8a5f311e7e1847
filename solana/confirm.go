package solana

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/client"
	"github.com/AlexZinkM/keypair-wallet/internal/metrics"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

const expiredReason = "block height exceeded: blockhash expired before the transaction landed"

type confirmation struct {
	outcome model.Outcome
	reason  string
}

// settle waits for a submitted transaction and refreshes the account balance once it is confirmed
func (m *Manager) settle(ctx context.Context, id model.RecordID, sig solana.Signature, ref client.Reference) (*model.TransferResult, error) {
	conf := m.awaitConfirmation(ctx, sig, ref)
	res := &model.TransferResult{
		Signature: sig.String(),
		Outcome:   conf.outcome,
	}

	switch conf.outcome {
	case model.OutcomeTimedOut:
		err := apperr.Newf(apperr.KindConfirmationTimeout,
			"confirmation not received within %s; the transaction may still land, check signature %s",
			m.opts.ConfirmTimeout, sig)
		return res, apperr.WithSignature(err, sig.String())
	case model.OutcomeRejected:
		err := apperr.Newf(apperr.KindLedgerRejection, "transaction failed: %s", conf.reason)
		return res, apperr.WithSignature(err, sig.String())
	}

	if _, err := m.RefreshBalance(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id.String()).Str("signature", sig.String()).
			Msg("Transaction confirmed but balance refresh failed")
		return res, nil
	}
	res.BalanceRefreshed = true
	return res, nil
}

// awaitConfirmation races the confirmation poll against the configured timeout.
// Cancelling ctx or hitting the timeout abandons the wait, never the transaction.
func (m *Manager) awaitConfirmation(ctx context.Context, sig solana.Signature, ref client.Reference) confirmation {
	started := time.Now()

	pollCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan confirmation, 1)
	go func() {
		done <- m.pollConfirmation(pollCtx, sig, ref)
	}()

	timer := time.NewTimer(m.opts.ConfirmTimeout)
	defer timer.Stop()

	select {
	case conf := <-done:
		if conf.outcome != model.OutcomeTimedOut {
			metrics.ConfirmationSeconds.Observe(time.Since(started).Seconds())
		}
		log.Debug().Str("signature", sig.String()).Str("outcome", string(conf.outcome)).Msg("Confirmation resolved")
		return conf
	case <-timer.C:
		log.Warn().Str("signature", sig.String()).Dur("timeout", m.opts.ConfirmTimeout).Msg("Confirmation timed out")
		return confirmation{outcome: model.OutcomeTimedOut}
	}
}

func (m *Manager) pollConfirmation(ctx context.Context, sig solana.Signature, ref client.Reference) confirmation {
	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	for {
		status, err := m.ledger.Confirm(ctx, sig, ref)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return confirmation{outcome: model.OutcomeTimedOut}
			}
			// Transient lookup errors say nothing about the transaction
			log.Debug().Err(err).Str("signature", sig.String()).Msg("Status lookup failed, retrying")
		case status.Kind == client.StatusSucceeded:
			return confirmation{outcome: model.OutcomeConfirmed}
		case status.Kind == client.StatusFailed:
			return confirmation{outcome: model.OutcomeRejected, reason: status.Err}
		case status.Kind == client.StatusExpired:
			return confirmation{outcome: model.OutcomeRejected, reason: expiredReason}
		}

		select {
		case <-ctx.Done():
			return confirmation{outcome: model.OutcomeTimedOut}
		case <-ticker.C:
		}
	}
}
