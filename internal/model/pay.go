package model

// PayRequest represents request for POST /transfers
type PayRequest struct {
	SourceID  RecordID `json:"sourceId" binding:"required"`
	ToAddress string   `json:"toAddress" binding:"required"`
	Amount    string   `json:"amount" binding:"required"`
}

// PayResponse represents response for POST /transfers
type PayResponse struct {
	TxID             string `json:"txId"`
	Outcome          string `json:"outcome"`
	BalanceRefreshed bool   `json:"balanceRefreshed"`
}

// AirdropRequest represents request for POST /keypairs/{id}/airdrop
type AirdropRequest struct {
	Amount string `json:"amount" binding:"required"`
}
