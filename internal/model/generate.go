package model

// GenerateResponse represents response for POST /keypairs
type GenerateResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	ID      RecordID `json:"id,omitempty"`
	Address string   `json:"address,omitempty"`
}

// QRResponse represents response for GET /keypairs/{id}/qr
type QRResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}

// ImportResponse represents response for POST /import
type ImportResponse struct {
	Merged  int `json:"merged"`
	Skipped int `json:"skipped"`
}
