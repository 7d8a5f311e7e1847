package model

// TransferRequest is one transfer attempt. It is never persisted.
type TransferRequest struct {
	SourceID    RecordID
	Destination string
	Amount      string // SOL
}

// Outcome is the terminal state of a submitted transaction
type Outcome string

const (
	OutcomeConfirmed Outcome = "CONFIRMED"
	OutcomeRejected  Outcome = "REJECTED"
	// OutcomeTimedOut means unknown: the transaction may still land
	OutcomeTimedOut Outcome = "TIMED_OUT"
)

// TransferResult describes a submitted transfer or airdrop
type TransferResult struct {
	Signature        string
	Outcome          Outcome
	BalanceRefreshed bool
}
