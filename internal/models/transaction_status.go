package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default values applied when a transaction has no status record yet.
const (
	StatusUnknown        = "UNKNOWN"
	DefaultSettledAmount = 0
)

// TransactionStatus is a collect_request_status document. It references its
// transaction by collect_id only; the two documents are written independently,
// so a transaction may have no status record at any given moment.
type TransactionStatus struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CollectID         primitive.ObjectID `bson:"collect_id" json:"collect_id"`
	Status            string             `bson:"status" json:"status"`
	PaymentMethod     string             `bson:"payment_method" json:"payment_method"`
	Gateway           string             `bson:"gateway" json:"gateway"`
	BankReference     string             `bson:"bank_reference" json:"bank_reference"`
	TransactionAmount float64            `bson:"transaction_amount" json:"transaction_amount"`
}
