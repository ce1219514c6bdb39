package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/schoolpay/schoolpay-gobackend/internal/models"
	"github.com/schoolpay/schoolpay-gobackend/internal/response"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TransactionService is what the transaction endpoints need from the service
// layer.
type TransactionService interface {
	FetchAllTransactions(ctx context.Context, page, limit int) models.PagedTransactions
	FetchTransactionsBySchool(ctx context.Context, schoolID string, page, limit int) models.PagedTransactions
	FetchTransactionByCustomOrderID(ctx context.Context, customOrderID string) *models.TransactionView
	UpdateTransactionStatus(ctx context.Context, collectID, status string) (*models.StatusUpdateResult, error)
	RequestPaymentLink(ctx context.Context, schoolID string, amount float64) string
}

type TransactionHandler struct {
	service TransactionService
}

func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// pageParams reads page/limit query strings. Values that do not parse fall
// back to the defaults; there is deliberately no upper bound on limit.
func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = defaultPage
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = defaultLimit
	}
	return page, limit
}

// Probe answers on the protected collection root.
func (h *TransactionHandler) Probe(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "protected transaction controller")
}

// PublicProbe answers on the open demo route.
func (h *TransactionHandler) PublicProbe(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"data": "public transaction controller"})
}

// GetAllTransactions returns one reconciled page across every school.
func (h *TransactionHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	response.Success(w, h.service.FetchAllTransactions(r.Context(), page, limit))
}

// GetTransactionsBySchool returns one reconciled page for the school in the
// path.
func (h *TransactionHandler) GetTransactionsBySchool(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	schoolID := mux.Vars(r)["schoolId"]
	response.Success(w, h.service.FetchTransactionsBySchool(r.Context(), schoolID, page, limit))
}

// CheckTransactionStatus looks up a single reconciled transaction by its
// custom order id. Data is null when nothing matches.
func (h *TransactionHandler) CheckTransactionStatus(w http.ResponseWriter, r *http.Request) {
	customOrderID := mux.Vars(r)["customOrderId"]

	view := h.service.FetchTransactionByCustomOrderID(r.Context(), customOrderID)
	if view == nil {
		response.Success(w, nil)
		return
	}
	response.Success(w, view)
}

// UpdateTransactionStatus manually overwrites a transaction's status.
func (h *TransactionHandler) UpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectID string `json:"collect_id"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeBadRequest, response.MsgBadRequest)
		return
	}
	if body.CollectID == "" || body.Status == "" {
		response.Error(w, http.StatusBadRequest, response.CodeBadRequest, response.MsgBadRequest)
		return
	}

	result, err := h.service.UpdateTransactionStatus(r.Context(), body.CollectID, body.Status)
	if err != nil {
		response.Error(w, http.StatusNotFound, response.CodeStatusNotFound, response.MsgStatusNotFound)
		return
	}

	response.Success(w, result)
}

// CollectPayment asks the gateway for a payment page link. Data is null when
// the gateway yields no link. Amount is checked for presence only; its value
// is passed through to the gateway untouched.
func (h *TransactionHandler) CollectPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SchoolID string  `json:"school_id"`
		Amount   float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeBadRequest, response.MsgBadRequest)
		return
	}
	if body.SchoolID == "" || body.Amount == 0 {
		response.Error(w, http.StatusBadRequest, response.CodeBadRequest, response.MsgBadRequest)
		return
	}

	url := h.service.RequestPaymentLink(r.Context(), body.SchoolID, body.Amount)
	if url == "" {
		response.Success(w, nil)
		return
	}
	response.Success(w, url)
}
