package model

// KeypairView represents a keypair in GET /keypairs.
// PrivateKey is only filled when the record's showPrivate flag is set.
type KeypairView struct {
	ID          RecordID `json:"id"`
	PublicKey   string   `json:"publicKey"`
	PrivateKey  string   `json:"privateKey,omitempty"`
	ShowPrivate bool     `json:"showPrivate"`
	Balance     string   `json:"balance"`
}

// KeypairListResponse represents response for GET /keypairs
type KeypairListResponse struct {
	Keypairs     []KeypairView `json:"keypairs"`
	TotalBalance string        `json:"totalBalance"`
}

// BalanceResponse represents response for POST /keypairs/{id}/refresh
type BalanceResponse struct {
	ID      RecordID `json:"id"`
	Address string   `json:"address"`
	SOL     string   `json:"sol"`
}

// View renders the record for listings, masking the private key unless showPrivate is set
func (r KeypairRecord) View() KeypairView {
	view := KeypairView{
		ID:          r.ID,
		PublicKey:   r.PublicKey,
		ShowPrivate: r.ShowPrivate,
		Balance:     r.Balance.String(),
	}
	if r.ShowPrivate {
		view.PrivateKey = r.PrivateKey
	}
	return view
}
