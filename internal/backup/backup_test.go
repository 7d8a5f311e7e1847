package backup

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

func newRecord(id string) model.KeypairRecord {
	secret := codec.Generate()
	return model.KeypairRecord{
		ID:         model.RecordID(id),
		PublicKey:  secret.PublicKey().String(),
		PrivateKey: codec.EncodeSecret(secret),
		Balance:    decimal.RequireFromString("0.5"),
	}
}

func TestExportParse_RoundTrip(t *testing.T) {
	records := []model.KeypairRecord{newRecord("a"), newRecord("b")}
	records[1].ShowPrivate = true

	data, err := Export(records)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range records {
		assert.Equal(t, records[i].ID, got[i].ID)
		assert.Equal(t, records[i].PublicKey, got[i].PublicKey)
		assert.Equal(t, records[i].PrivateKey, got[i].PrivateKey)
		assert.Equal(t, records[i].ShowPrivate, got[i].ShowPrivate)
		assert.True(t, records[i].Balance.Equal(got[i].Balance))
	}
}

func TestExport_Empty(t *testing.T) {
	data, err := Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestParse_ShortSecretRejectsWholePayload(t *testing.T) {
	good := newRecord("good")
	bad := newRecord("bad")
	secret, err := codec.DecodeSecret(bad.PrivateKey)
	require.NoError(t, err)
	bad.PrivateKey = base58.Encode(secret[:63])

	data, err := json.Marshal([]model.KeypairRecord{good, bad})
	require.NoError(t, err)

	got, err := Parse(data)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "invalid entry 1")
}

func TestParse_Rejects(t *testing.T) {
	rec := newRecord("1")
	other := newRecord("2")

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{{`},
		{name: "not an array", payload: `{"id":"1"}`},
		{name: "entry not an object", payload: `["x"]`},
		{name: "missing id", payload: fmt.Sprintf(`[{"publicKey":%q,"privateKey":%q}]`, rec.PublicKey, rec.PrivateKey)},
		{name: "missing publicKey", payload: fmt.Sprintf(`[{"id":"1","privateKey":%q}]`, rec.PrivateKey)},
		{name: "missing privateKey", payload: fmt.Sprintf(`[{"id":"1","publicKey":%q}]`, rec.PublicKey)},
		{name: "bad address", payload: fmt.Sprintf(`[{"id":"1","publicKey":"xyz","privateKey":%q}]`, rec.PrivateKey)},
		{name: "bad base58 secret", payload: fmt.Sprintf(`[{"id":"1","publicKey":%q,"privateKey":"0OIl"}]`, rec.PublicKey)},
		{name: "mismatched pair", payload: fmt.Sprintf(`[{"id":"1","publicKey":%q,"privateKey":%q}]`, rec.PublicKey, other.PrivateKey)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestParse_NumericIDAndDefaults(t *testing.T) {
	rec := newRecord("")
	payload := fmt.Sprintf("\xEF\xBB\xBF[{\"id\":1700000000000,\"publicKey\":%q,\"privateKey\":%q}]", rec.PublicKey, rec.PrivateKey)

	got, err := Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.RecordID("1700000000000"), got[0].ID)
	assert.True(t, got[0].Balance.IsZero())
	assert.False(t, got[0].ShowPrivate)
}
