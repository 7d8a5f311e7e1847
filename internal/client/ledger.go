package client

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrRejected marks errors where the ledger answered and refused the request,
// as opposed to transport or transient node failures.
var ErrRejected = errors.New("rejected by ledger")

// Reference binds a transaction to recent ledger state
type Reference struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// StatusKind is the state of a submitted transaction
type StatusKind int

const (
	StatusPending StatusKind = iota
	StatusSucceeded
	StatusFailed
	// StatusExpired: the reference blockhash is past its last valid height and
	// the transaction was not seen; it can no longer land.
	StatusExpired
)

func (k StatusKind) String() string {
	switch k {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Status is the result of one confirmation lookup
type Status struct {
	Kind StatusKind
	// Err is the on-chain execution error, verbatim, when Kind is StatusFailed
	Err string
}
