package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpay/schoolpay-gobackend/internal/apperr"
	"github.com/schoolpay/schoolpay-gobackend/internal/models"
)

const statusCollection = "collect_request_status"

// StatusRepository reads and writes collect request status documents.
type StatusRepository struct {
	collection *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{collection: db.Collection(statusCollection)}
}

// FindByCollectIDs fetches the status records for a batch of collect ids in a
// single query. Ids without a status record are simply absent from the result.
func (r *StatusRepository) FindByCollectIDs(ctx context.Context, collectIDs []primitive.ObjectID) ([]models.TransactionStatus, error) {
	if len(collectIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := r.collection.Find(ctx, bson.M{"collect_id": bson.M{"$in": collectIDs}})
	if err != nil {
		return nil, apperr.NewStoreError("find statuses", err)
	}
	defer cur.Close(ctx)

	var statuses []models.TransactionStatus
	if err := cur.All(ctx, &statuses); err != nil {
		return nil, apperr.NewStoreError("decode statuses", err)
	}

	return statuses, nil
}

// UpdateStatus overwrites the status field of the record referencing
// collectID. It never creates a record; a missing target is a NotFoundError.
func (r *StatusRepository) UpdateStatus(ctx context.Context, collectID primitive.ObjectID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"collect_id": collectID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return apperr.NewStoreError("update status", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NewNotFoundError("status")
	}

	return nil
}

// Insert stores a new status record.
func (r *StatusRepository) Insert(ctx context.Context, status *models.TransactionStatus) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, status)
	if err != nil {
		return primitive.NilObjectID, apperr.NewStoreError("insert status", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
