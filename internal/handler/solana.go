package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

const (
	maxRequestBytes = 64 << 10
	maxImportBytes  = 1 << 20
)

// SolanaHandler serves the keypair wallet over HTTP
type SolanaHandler struct {
	manager *solana.Manager
}

// NewSolanaHandler creates a new SolanaHandler
func NewSolanaHandler(manager *solana.Manager) *SolanaHandler {
	return &SolanaHandler{manager: manager}
}

// List handles GET /keypairs
// @Summary      List keypairs
// @Description  Lists all keypairs with cached balances. Private keys are only shown for records with showPrivate set.
// @Tags         keypairs
// @Produce      json
// @Success      200  {object}  model.KeypairListResponse
// @Router       /keypairs [get]
func (h *SolanaHandler) List(w http.ResponseWriter, r *http.Request) {
	records := h.manager.Keypairs()

	views := make([]model.KeypairView, 0, len(records))
	for _, rec := range records {
		views = append(views, rec.View())
	}

	writeJSON(w, http.StatusOK, model.KeypairListResponse{
		Keypairs:     views,
		TotalBalance: common.FormatSOL(h.manager.TotalBalance()),
	})
}

// Create handles POST /keypairs
// @Summary      Generate new keypair
// @Description  Generates a new keypair and adds it to the address book with a zero balance
// @Tags         keypairs
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /keypairs [post]
func (h *SolanaHandler) Create(w http.ResponseWriter, r *http.Request) {
	rec, err := h.manager.CreateKeypair()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Keypair generated successfully",
		ID:      rec.ID,
		Address: rec.PublicKey,
	})
}

// Delete handles DELETE /keypairs/{id}
// @Summary      Delete keypair
// @Description  Removes a keypair. Deleting an unknown id succeeds.
// @Tags         keypairs
// @Param        id   path  string  true  "Keypair ID"
// @Success      204
// @Failure      500  {object}  model.ErrorResponse
// @Router       /keypairs/{id} [delete]
func (h *SolanaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.DeleteKeypair(pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleVisibility handles POST /keypairs/{id}/toggle
// @Summary      Toggle private key visibility
// @Tags         keypairs
// @Param        id   path  string  true  "Keypair ID"
// @Success      204
// @Failure      500  {object}  model.ErrorResponse
// @Router       /keypairs/{id}/toggle [post]
func (h *SolanaHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ToggleVisibility(pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshBalance handles POST /keypairs/{id}/refresh
// @Summary      Refresh balance
// @Description  Reads the balance from the network and caches it. On failure the cached balance is kept.
// @Tags         keypairs
// @Produce      json
// @Param        id   path      string  true  "Keypair ID"
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /keypairs/{id}/refresh [post]
func (h *SolanaHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	balance, err := h.manager.RefreshBalance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.manager.Keypair(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BalanceResponse{
		ID:      id,
		Address: rec.PublicKey,
		SOL:     common.FormatSOL(balance),
	})
}

// QRCode handles GET /keypairs/{id}/qr
// @Summary      Address QR code
// @Description  Returns the keypair address as a base64 PNG QR code
// @Tags         keypairs
// @Produce      json
// @Param        id   path      string  true  "Keypair ID"
// @Success      200  {object}  model.QRResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /keypairs/{id}/qr [get]
func (h *SolanaHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.manager.QRCode(pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qr)
}

// Airdrop handles POST /keypairs/{id}/airdrop
// @Summary      Request test funds
// @Description  Asks the test network faucet to credit the keypair (at most 2 SOL by default)
// @Tags         keypairs
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Keypair ID"
// @Param        request  body      model.AirdropRequest  true  "Airdrop amount"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /keypairs/{id}/airdrop [post]
func (h *SolanaHandler) Airdrop(w http.ResponseWriter, r *http.Request) {
	var req model.AirdropRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.manager.RequestFunds(r.Context(), pathID(r), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payResponse(res))
}

// Transfer handles POST /transfers
// @Summary      Send SOL
// @Description  Sends SOL from a managed keypair. A 504 response carries the txId: the transfer may still land.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /transfers [post]
func (h *SolanaHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req model.PayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.manager.Transfer(r.Context(), model.TransferRequest{
		SourceID:    req.SourceID,
		Destination: req.ToAddress,
		Amount:      req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payResponse(res))
}

// Export handles GET /export
// @Summary      Export keypairs
// @Description  Downloads every keypair including cleartext private keys
// @Tags         backup
// @Produce      json
// @Success      200  {array}   model.KeypairRecord
// @Router       /export [get]
func (h *SolanaHandler) Export(w http.ResponseWriter, r *http.Request) {
	payload, err := h.manager.Export()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="keypairs.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// Import handles POST /import
// @Summary      Import keypairs
// @Description  Merges an exported array. Keypairs already present are skipped; one invalid entry rejects the whole payload.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Param        request  body      []model.KeypairRecord  true  "Exported keypairs"
// @Success      200      {object}  model.ImportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /import [post]
func (h *SolanaHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, apperr.Wrap(err, apperr.KindValidation, "failed to read request body"))
		return
	}

	res, err := h.manager.Import(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ImportResponse{
		Merged:  res.Merged,
		Skipped: res.Skipped,
	})
}

func pathID(r *http.Request) model.RecordID {
	return model.RecordID(r.PathValue("id"))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid request body")
	}
	return nil
}

func payResponse(res *model.TransferResult) model.PayResponse {
	return model.PayResponse{
		TxID:             res.Signature,
		Outcome:          string(res.Outcome),
		BalanceRefreshed: res.BalanceRefreshed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("code", kind.String()).Msg("Request failed")
	}

	writeJSON(w, status, model.ErrorResponse{
		Error: err.Error(),
		Code:  kind.String(),
		TxID:  apperr.SignatureOf(err),
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInsufficientFunds, apperr.KindLedgerRejection:
		return http.StatusUnprocessableEntity
	case apperr.KindNetwork:
		return http.StatusBadGateway
	case apperr.KindConfirmationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
