package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolpay/schoolpay-gobackend/internal/apperr"
	"github.com/schoolpay/schoolpay-gobackend/internal/models"
)

const transactionCollection = "collect_request"

// TransactionRepository reads and writes collect request documents.
type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{collection: db.Collection(transactionCollection)}
}

// List returns one page of transactions plus the total number of documents
// matching the filter. An empty schoolID matches every school.
func (r *TransactionRepository) List(ctx context.Context, schoolID string, skip, limit int64) ([]models.Transaction, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if schoolID != "" {
		filter["school_id"] = schoolID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.NewStoreError("count collect requests", err)
	}

	cur, err := r.collection.Find(ctx, filter, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, apperr.NewStoreError("find collect requests", err)
	}
	defer cur.Close(ctx)

	var transactions []models.Transaction
	if err := cur.All(ctx, &transactions); err != nil {
		return nil, 0, apperr.NewStoreError("decode collect requests", err)
	}

	return transactions, total, nil
}

// FindByCustomOrderID looks up the single transaction carrying the externally
// supplied order id.
func (r *TransactionRepository) FindByCustomOrderID(ctx context.Context, customOrderID string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transaction models.Transaction
	if err := r.collection.FindOne(ctx, bson.M{"custom_order_id": customOrderID}).Decode(&transaction); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NewNotFoundError("collect request")
		}
		return nil, apperr.NewStoreError("find collect request", err)
	}

	return &transaction, nil
}

// Insert stores a new transaction and returns its assigned id.
func (r *TransactionRepository) Insert(ctx context.Context, transaction *models.Transaction) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, transaction)
	if err != nil {
		return primitive.NilObjectID, apperr.NewStoreError("insert collect request", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
