package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schoolpay/schoolpay-gobackend/internal/apperr"
	"github.com/schoolpay/schoolpay-gobackend/internal/models"
)

type fakeTransactionStore struct {
	items     []models.Transaction
	total     int64
	err       error
	findErr   error
	byOrderID map[string]models.Transaction

	lastSchoolID string
	lastSkip     int64
	lastLimit    int64
}

func (f *fakeTransactionStore) List(ctx context.Context, schoolID string, skip, limit int64) ([]models.Transaction, int64, error) {
	f.lastSchoolID = schoolID
	f.lastSkip = skip
	f.lastLimit = limit
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.items, f.total, nil
}

func (f *fakeTransactionStore) FindByCustomOrderID(ctx context.Context, customOrderID string) (*models.Transaction, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	transaction, ok := f.byOrderID[customOrderID]
	if !ok {
		return nil, apperr.NewNotFoundError("collect request")
	}
	return &transaction, nil
}

type fakeStatusStore struct {
	byCollectID map[primitive.ObjectID]models.TransactionStatus
	err         error
	updateErr   error

	updates []string
}

func (f *fakeStatusStore) FindByCollectIDs(ctx context.Context, collectIDs []primitive.ObjectID) ([]models.TransactionStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	var statuses []models.TransactionStatus
	for _, id := range collectIDs {
		if status, ok := f.byCollectID[id]; ok {
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func (f *fakeStatusStore) UpdateStatus(ctx context.Context, collectID primitive.ObjectID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, status)
	return nil
}

type fakeIssuer struct {
	url string
	err error
}

func (f *fakeIssuer) CreateCollectRequest(ctx context.Context, schoolID string, amount float64) (string, error) {
	return f.url, f.err
}

func demoTransaction(school string, amount float64) models.Transaction {
	return models.Transaction{
		ID:            primitive.NewObjectID(),
		SchoolID:      school,
		TrusteeID:     "trustee-1",
		Gateway:       "PhonePe",
		OrderAmount:   amount,
		CustomOrderID: "ORD-" + primitive.NewObjectID().Hex(),
	}
}

func TestFetchAllTransactions(t *testing.T) {
	withStatus := demoTransaction("school-a", 2000)
	withoutStatus := demoTransaction("school-b", 1500)

	statuses := &fakeStatusStore{
		byCollectID: map[primitive.ObjectID]models.TransactionStatus{
			withStatus.ID: {
				CollectID:         withStatus.ID,
				Status:            "SUCCESS",
				PaymentMethod:     "upi",
				Gateway:           "PhonePe",
				BankReference:     "BNK100001",
				TransactionAmount: 1980,
			},
		},
	}
	transactions := &fakeTransactionStore{
		items: []models.Transaction{withStatus, withoutStatus},
		total: 2,
	}
	service := NewTransactionService(transactions, statuses, &fakeIssuer{})

	t.Run("merges status fields exactly", func(t *testing.T) {
		result := service.FetchAllTransactions(context.Background(), 1, 10)

		require.Len(t, result.Data, 2)
		assert.Equal(t, "SUCCESS", result.Data[0].Status)
		assert.Equal(t, float64(1980), result.Data[0].TransactionAmount)
		assert.Equal(t, withStatus.ID.Hex(), result.Data[0].CollectID)
		assert.Equal(t, withStatus.CustomOrderID, result.Data[0].CustomOrderID)
	})

	t.Run("defaults to UNKNOWN and zero without a status record", func(t *testing.T) {
		result := service.FetchAllTransactions(context.Background(), 1, 10)

		require.Len(t, result.Data, 2)
		assert.Equal(t, models.StatusUnknown, result.Data[1].Status)
		assert.Equal(t, float64(0), result.Data[1].TransactionAmount)
		assert.Equal(t, float64(1500), result.Data[1].OrderAmount)
	})

	t.Run("computes skip from page and limit", func(t *testing.T) {
		service.FetchAllTransactions(context.Background(), 2, 10)

		assert.Equal(t, int64(10), transactions.lastSkip)
		assert.Equal(t, int64(10), transactions.lastLimit)
		assert.Equal(t, "", transactions.lastSchoolID)
	})

	t.Run("reports counts for a middle page", func(t *testing.T) {
		pageItems := make([]models.Transaction, 10)
		for i := range pageItems {
			pageItems[i] = demoTransaction("school-a", 100)
		}
		store := &fakeTransactionStore{items: pageItems, total: 25}
		svc := NewTransactionService(store, &fakeStatusStore{}, &fakeIssuer{})

		result := svc.FetchAllTransactions(context.Background(), 2, 10)

		assert.Equal(t, 10, result.ResultCount)
		assert.Equal(t, int64(25), result.TotalCount)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 10, result.Limit)
	})

	t.Run("status fetch failure falls back to defaults for the whole batch", func(t *testing.T) {
		broken := &fakeStatusStore{err: errors.New("status store down")}
		svc := NewTransactionService(transactions, broken, &fakeIssuer{})

		result := svc.FetchAllTransactions(context.Background(), 1, 10)

		require.Len(t, result.Data, 2)
		for _, view := range result.Data {
			assert.Equal(t, models.StatusUnknown, view.Status)
			assert.Equal(t, float64(0), view.TransactionAmount)
		}
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("transaction fetch failure degrades to the empty shape", func(t *testing.T) {
		broken := &fakeTransactionStore{err: apperr.NewStoreError("find collect requests", errors.New("down"))}
		svc := NewTransactionService(broken, statuses, &fakeIssuer{})

		result := svc.FetchAllTransactions(context.Background(), 3, 7)

		assert.Empty(t, result.Data)
		assert.Equal(t, 0, result.ResultCount)
		assert.Equal(t, int64(0), result.TotalCount)
		assert.Equal(t, 3, result.Page)
		assert.Equal(t, 7, result.Limit)
	})
}

func TestFetchTransactionsBySchool(t *testing.T) {
	transaction := demoTransaction("school-a", 900)
	transactions := &fakeTransactionStore{items: []models.Transaction{transaction}, total: 1}
	service := NewTransactionService(transactions, &fakeStatusStore{}, &fakeIssuer{})

	result := service.FetchTransactionsBySchool(context.Background(), "school-a", 1, 10)

	assert.Equal(t, "school-a", transactions.lastSchoolID)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "school-a", result.Data[0].SchoolID)
}

func TestFetchTransactionByCustomOrderID(t *testing.T) {
	transaction := demoTransaction("school-a", 1200)
	transactions := &fakeTransactionStore{
		byOrderID: map[string]models.Transaction{transaction.CustomOrderID: transaction},
	}
	statuses := &fakeStatusStore{
		byCollectID: map[primitive.ObjectID]models.TransactionStatus{
			transaction.ID: {CollectID: transaction.ID, Status: "PENDING", TransactionAmount: 1200},
		},
	}
	service := NewTransactionService(transactions, statuses, &fakeIssuer{})

	t.Run("found", func(t *testing.T) {
		view := service.FetchTransactionByCustomOrderID(context.Background(), transaction.CustomOrderID)

		require.NotNil(t, view)
		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, transaction.ID.Hex(), view.CollectID)
	})

	t.Run("unknown order id yields nil", func(t *testing.T) {
		assert.Nil(t, service.FetchTransactionByCustomOrderID(context.Background(), "ORD-missing"))
	})

	t.Run("store failure yields nil", func(t *testing.T) {
		broken := &fakeTransactionStore{findErr: apperr.NewStoreError("find collect request", errors.New("down"))}
		svc := NewTransactionService(broken, statuses, &fakeIssuer{})

		assert.Nil(t, svc.FetchTransactionByCustomOrderID(context.Background(), transaction.CustomOrderID))
	})
}

func TestUpdateTransactionStatus(t *testing.T) {
	service := func(statuses *fakeStatusStore) *TransactionService {
		return NewTransactionService(&fakeTransactionStore{}, statuses, &fakeIssuer{})
	}

	t.Run("success returns a confirmation", func(t *testing.T) {
		statuses := &fakeStatusStore{}
		collectID := primitive.NewObjectID().Hex()

		result, err := service(statuses).UpdateTransactionStatus(context.Background(), collectID, "SUCCESS")

		require.NoError(t, err)
		assert.Equal(t, collectID, result.CollectID)
		assert.Equal(t, "SUCCESS", result.NewStatus)
	})

	t.Run("repeated identical calls keep succeeding", func(t *testing.T) {
		statuses := &fakeStatusStore{}
		svc := service(statuses)
		collectID := primitive.NewObjectID().Hex()

		for i := 0; i < 3; i++ {
			_, err := svc.UpdateTransactionStatus(context.Background(), collectID, "FAILED")
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"FAILED", "FAILED", "FAILED"}, statuses.updates)
	})

	t.Run("missing target is a not-found error and writes nothing", func(t *testing.T) {
		statuses := &fakeStatusStore{updateErr: apperr.NewNotFoundError("status")}

		result, err := service(statuses).UpdateTransactionStatus(context.Background(), primitive.NewObjectID().Hex(), "SUCCESS")

		assert.Nil(t, result)
		assert.True(t, apperr.IsNotFound(err))
		assert.Empty(t, statuses.updates)
	})

	t.Run("malformed collect id maps to not found", func(t *testing.T) {
		statuses := &fakeStatusStore{}

		_, err := service(statuses).UpdateTransactionStatus(context.Background(), "not-an-object-id", "SUCCESS")

		assert.True(t, apperr.IsNotFound(err))
		assert.Empty(t, statuses.updates)
	})
}

func TestRequestPaymentLink(t *testing.T) {
	t.Run("returns the gateway url", func(t *testing.T) {
		service := NewTransactionService(&fakeTransactionStore{}, &fakeStatusStore{}, &fakeIssuer{url: "https://pay.example/x"})

		assert.Equal(t, "https://pay.example/x", service.RequestPaymentLink(context.Background(), "school-a", 1000))
	})

	t.Run("gateway failure degrades to an empty link", func(t *testing.T) {
		service := NewTransactionService(&fakeTransactionStore{}, &fakeStatusStore{}, &fakeIssuer{err: errors.New("gateway unreachable")})

		assert.Equal(t, "", service.RequestPaymentLink(context.Background(), "school-a", 1000))
	})
}
