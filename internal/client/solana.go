package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const (
	rpcTimeout = 15 * time.Second
)

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
}

// NewSolanaClient creates a new Solana client for the given RPC endpoint.
func NewSolanaClient(rpcURL string) (*SolanaClient, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("solana RPC URL is required")
	}

	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
	}, nil
}

// RPCURL returns the endpoint the client talks to
func (c *SolanaClient) RPCURL() string {
	return c.rpcURL
}

// GetBalance gets SOL balance in lamports
func (c *SolanaClient) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	balance, err := c.rpcClient.GetBalance(ctx, address, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to get SOL balance: %w", err))
	}
	return balance.Value, nil
}

// GetLatestReference gets the latest blockhash and the last block height it is valid for
func (c *SolanaClient) GetLatestReference(ctx context.Context) (Reference, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	// GetRecentBlockhash is deprecated, use GetLatestBlockhash
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return Reference{}, classify(fmt.Errorf("failed to get recent blockhash: %w", err))
	}
	if recent.Value == nil {
		return Reference{}, fmt.Errorf("failed to get recent blockhash: empty response")
	}

	return Reference{
		Blockhash:            recent.Value.Blockhash,
		LastValidBlockHeight: recent.Value.LastValidBlockHeight,
	}, nil
}

// Submit sends a signed, serialized transaction
func (c *SolanaClient) Submit(ctx context.Context, rawTx []byte) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	sig, err := c.rpcClient.SendRawTransactionWithOpts(
		ctx,
		rawTx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // Transaction validation before node
			PreflightCommitment: rpc.CommitmentConfirmed,
		},
	)
	if err != nil {
		return solana.Signature{}, classify(fmt.Errorf("failed to send transaction: %w", err))
	}
	return sig, nil
}

// Confirm performs one status lookup for sig.
// A signature the node has not seen is pending until the reference expires.
func (c *SolanaClient) Confirm(ctx context.Context, sig solana.Signature, ref Reference) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	statuses, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return Status{}, classify(fmt.Errorf("failed to get signature status: %w", err))
	}

	var st *rpc.SignatureStatusesResult
	if statuses != nil && len(statuses.Value) > 0 {
		st = statuses.Value[0]
	}

	if st == nil {
		height, err := c.rpcClient.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
		if err != nil {
			return Status{}, classify(fmt.Errorf("failed to get block height: %w", err))
		}
		if height > ref.LastValidBlockHeight {
			return Status{Kind: StatusExpired}, nil
		}
		return Status{Kind: StatusPending}, nil
	}

	if st.Err != nil {
		return Status{Kind: StatusFailed, Err: fmt.Sprintf("%v", st.Err)}, nil
	}

	switch st.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return Status{Kind: StatusSucceeded}, nil
	default:
		return Status{Kind: StatusPending}, nil
	}
}

// RequestTestFunds asks the cluster faucet to airdrop lamports to address (devnet/testnet only)
func (c *SolanaClient) RequestTestFunds(ctx context.Context, address solana.PublicKey, lamports uint64) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	sig, err := c.rpcClient.RequestAirdrop(ctx, address, lamports, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, classify(fmt.Errorf("failed to request airdrop: %w", err))
	}
	return sig, nil
}

// Close releases the underlying HTTP connections
func (c *SolanaClient) Close() error {
	return c.rpcClient.Close()
}

// JSON-RPC error codes where the node evaluated the request and refused it.
// Anything else (node unhealthy, rate limited, internal error) is transient.
const (
	codeInvalidParams          = -32602
	codePreflightFailure       = -32002
	codeSignatureVerifyFailure = -32003
)

// classify marks definitive refusals with ErrRejected.
// Transport errors and transient node errors are returned unchanged.
func classify(err error) error {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return err
	}
	switch rpcErr.Code {
	case codePreflightFailure, codeSignatureVerifyFailure, codeInvalidParams:
		return fmt.Errorf("%w: %w", ErrRejected, err)
	default:
		return err
	}
}
