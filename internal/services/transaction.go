package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schoolpay/schoolpay-gobackend/internal/apperr"
	"github.com/schoolpay/schoolpay-gobackend/internal/models"
	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

// TransactionStore is the read side of the collect_request collection.
type TransactionStore interface {
	List(ctx context.Context, schoolID string, skip, limit int64) ([]models.Transaction, int64, error)
	FindByCustomOrderID(ctx context.Context, customOrderID string) (*models.Transaction, error)
}

// StatusStore is the read/write side of the collect_request_status collection.
type StatusStore interface {
	FindByCollectIDs(ctx context.Context, collectIDs []primitive.ObjectID) ([]models.TransactionStatus, error)
	UpdateStatus(ctx context.Context, collectID primitive.ObjectID, status string) error
}

// PaymentLinkIssuer obtains a payment page link from the external gateway.
type PaymentLinkIssuer interface {
	CreateCollectRequest(ctx context.Context, schoolID string, amount float64) (string, error)
}

// TransactionService joins transactions with their statuses at read time and
// fronts the payment gateway. Store failures on the read path are logged and
// degraded to empty or default results instead of being surfaced; list
// requests never fail because the status side is behind.
type TransactionService struct {
	transactions TransactionStore
	statuses     StatusStore
	issuer       PaymentLinkIssuer
}

func NewTransactionService(transactions TransactionStore, statuses StatusStore, issuer PaymentLinkIssuer) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		statuses:     statuses,
		issuer:       issuer,
	}
}

// mergeTransaction builds the externally visible view of a transaction.
// Without a status record the view carries UNKNOWN and a zero settled amount.
func mergeTransaction(transaction models.Transaction, status *models.TransactionStatus) models.TransactionView {
	view := models.TransactionView{
		CollectID:         transaction.ID.Hex(),
		SchoolID:          transaction.SchoolID,
		Gateway:           transaction.Gateway,
		OrderAmount:       transaction.OrderAmount,
		TransactionAmount: models.DefaultSettledAmount,
		Status:            models.StatusUnknown,
		CustomOrderID:     transaction.CustomOrderID,
	}
	if status != nil {
		view.TransactionAmount = status.TransactionAmount
		view.Status = status.Status
	}
	return view
}

// withStatus attaches current statuses to a batch of transactions using a
// single keyed query. If the status fetch fails, every item in the batch
// falls back to the default view; the transactions themselves still go out.
func (s *TransactionService) withStatus(ctx context.Context, transactions []models.Transaction) []models.TransactionView {
	collectIDs := make([]primitive.ObjectID, 0, len(transactions))
	for _, transaction := range transactions {
		collectIDs = append(collectIDs, transaction.ID)
	}

	byCollectID := make(map[primitive.ObjectID]models.TransactionStatus, len(collectIDs))
	statuses, err := s.statuses.FindByCollectIDs(ctx, collectIDs)
	if err != nil {
		log.GetLogger().Error().Err(err).Msg("failed to fetch transaction statuses")
	} else {
		for _, status := range statuses {
			byCollectID[status.CollectID] = status
		}
	}

	views := make([]models.TransactionView, 0, len(transactions))
	for _, transaction := range transactions {
		if status, ok := byCollectID[transaction.ID]; ok {
			views = append(views, mergeTransaction(transaction, &status))
		} else {
			views = append(views, mergeTransaction(transaction, nil))
		}
	}
	return views
}

// FetchAllTransactions returns one reconciled page across every school.
func (s *TransactionService) FetchAllTransactions(ctx context.Context, page, limit int) models.PagedTransactions {
	return s.fetchPage(ctx, "", page, limit)
}

// FetchTransactionsBySchool returns one reconciled page for a single school.
func (s *TransactionService) FetchTransactionsBySchool(ctx context.Context, schoolID string, page, limit int) models.PagedTransactions {
	return s.fetchPage(ctx, schoolID, page, limit)
}

func (s *TransactionService) fetchPage(ctx context.Context, schoolID string, page, limit int) models.PagedTransactions {
	result := models.PagedTransactions{
		Data:  []models.TransactionView{},
		Page:  page,
		Limit: limit,
	}

	skip := int64(page-1) * int64(limit)
	transactions, total, err := s.transactions.List(ctx, schoolID, skip, int64(limit))
	if err != nil {
		log.GetLogger().Error().Err(err).Str("school_id", schoolID).Msg("failed to fetch transactions")
		return result
	}

	result.Data = s.withStatus(ctx, transactions)
	result.ResultCount = len(transactions)
	result.TotalCount = total
	return result
}

// FetchTransactionByCustomOrderID resolves a single reconciled transaction by
// its caller-supplied order id. Both "not found" and a store failure yield a
// nil view.
func (s *TransactionService) FetchTransactionByCustomOrderID(ctx context.Context, customOrderID string) *models.TransactionView {
	transaction, err := s.transactions.FindByCustomOrderID(ctx, customOrderID)
	if err != nil {
		if !apperr.IsNotFound(err) {
			log.GetLogger().Error().Err(err).Str("custom_order_id", customOrderID).Msg("failed to fetch transaction")
		}
		return nil
	}

	views := s.withStatus(ctx, []models.Transaction{*transaction})
	return &views[0]
}

// UpdateTransactionStatus manually overwrites the status of the record
// referencing collectID. Repeated identical calls are idempotent. A missing
// target surfaces as a NotFoundError; nothing is created.
func (s *TransactionService) UpdateTransactionStatus(ctx context.Context, collectID, status string) (*models.StatusUpdateResult, error) {
	objectID, err := primitive.ObjectIDFromHex(collectID)
	if err != nil {
		return nil, apperr.NewNotFoundError("status")
	}

	if err := s.statuses.UpdateStatus(ctx, objectID, status); err != nil {
		if !apperr.IsNotFound(err) {
			log.GetLogger().Error().Err(err).Str("collect_id", collectID).Msg("failed to update transaction status")
		}
		return nil, err
	}

	return &models.StatusUpdateResult{
		Message:   "Transaction status updated successfully",
		CollectID: collectID,
		NewStatus: status,
	}, nil
}

// RequestPaymentLink obtains a payment page URL from the gateway. Gateway
// failures of any kind degrade to an empty link; the caller cannot tell a
// rejected request from an unreachable gateway.
func (s *TransactionService) RequestPaymentLink(ctx context.Context, schoolID string, amount float64) string {
	url, err := s.issuer.CreateCollectRequest(ctx, schoolID, amount)
	if err != nil {
		log.GetLogger().Error().Err(err).Str("school_id", schoolID).Msg("failed to create collect request")
		return ""
	}
	return url
}
