package solana

import (
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

// CreateKeypair generates a new keypair and persists it with a zero balance
func (m *Manager) CreateKeypair() (model.KeypairRecord, error) {
	rec, err := m.book.Create()
	if err != nil {
		return model.KeypairRecord{}, err
	}

	log.Info().Str("id", rec.ID.String()).Str("address", rec.PublicKey).Msg("Keypair created")
	return rec, nil
}

// QRCode renders the keypair's address as a base64 PNG
func (m *Manager) QRCode(id model.RecordID) (*model.QRResponse, error) {
	rec, err := m.Keypair(id)
	if err != nil {
		return nil, err
	}

	qr, err := generateQRCode(rec.PublicKey)
	if err != nil {
		return nil, err
	}

	return &model.QRResponse{
		Address: rec.PublicKey,
		QR:      qr,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
