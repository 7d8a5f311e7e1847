package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// TxID is set when the failure happened after a transaction was submitted.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	TxID  string `json:"txId,omitempty"`
}
