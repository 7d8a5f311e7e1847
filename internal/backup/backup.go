// Package backup validates externally supplied address books and renders
// exportable snapshots.
//
// Exports contain every private key in cleartext. Anyone holding an export
// controls the funds of every address in it.
package backup

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

const recordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "publicKey", "privateKey"],
    "properties": {
      "id":          {"type": ["string", "number"]},
      "publicKey":   {"type": "string", "minLength": 1},
      "privateKey":  {"type": "string", "minLength": 1},
      "showPrivate": {"type": "boolean"},
      "balance":     {"type": ["number", "string"]}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(recordsSchema)

// Export renders records as an indented JSON array, in order, secrets included.
func Export(records []model.KeypairRecord) ([]byte, error) {
	if records == nil {
		records = []model.KeypairRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "failed to marshal export")
	}
	return data, nil
}

// Parse validates the whole payload and returns its records.
// Any invalid entry rejects the payload; nothing is partially accepted.
func Parse(payload []byte) ([]model.KeypairRecord, error) {
	// Skip UTF-8 BOM if present
	payload = bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF})

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "import payload is not valid JSON")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, apperr.Validation("import payload failed validation: %s", strings.Join(msgs, "; "))
	}

	var records []model.KeypairRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "failed to unmarshal import payload")
	}

	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return nil, apperr.Wrap(err, apperr.KindValidation, "invalid entry "+strconv.Itoa(i))
		}
	}
	return records, nil
}

func validateRecord(rec *model.KeypairRecord) error {
	if rec.ID == "" {
		return apperr.Validation("id is required")
	}

	pub, err := codec.ParseAddress(rec.PublicKey)
	if err != nil {
		return apperr.Validation("publicKey is not a valid address")
	}

	secret, err := codec.DecodeSecret(rec.PrivateKey)
	if err != nil {
		return apperr.Validation("privateKey: %v", err)
	}
	defer clear(secret)

	derived, err := codec.DeriveKeypair(secret)
	if err != nil {
		return apperr.Validation("privateKey: %v", err)
	}
	if !derived.Equals(pub) {
		return apperr.Validation("privateKey does not belong to publicKey")
	}

	if rec.Balance.IsNegative() {
		rec.Balance = decimal.Zero
	}
	return nil
}
