package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Balances are persisted and exported as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordID identifies a keypair record inside the address book
type RecordID string

// UnmarshalJSON accepts both string ids and the numeric (millisecond timestamp)
// ids found in older exports.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

func (id RecordID) String() string {
	return string(id)
}

// KeypairRecord is a single managed keypair.
// This is also the persisted and exported representation.
type KeypairRecord struct {
	ID          RecordID        `json:"id"`
	PublicKey   string          `json:"publicKey"`
	PrivateKey  string          `json:"privateKey"` // base58 of the 64-byte secret
	ShowPrivate bool            `json:"showPrivate"`
	Balance     decimal.Decimal `json:"balance"` // SOL, as of the last successful refresh
}
