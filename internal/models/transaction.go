package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is a collect request document in the collect_request collection.
// It is created at payment-initiation time and never mutated afterwards.
type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID      string             `bson:"school_id" json:"school_id"`
	TrusteeID     string             `bson:"trustee_id" json:"trustee_id"`
	Gateway       string             `bson:"gateway" json:"gateway"`
	OrderAmount   float64            `bson:"order_amount" json:"order_amount"`
	CustomOrderID string             `bson:"custom_order_id" json:"custom_order_id"`
}

// TransactionView is a transaction merged with its current status. This is the
// shape every read endpoint returns.
type TransactionView struct {
	CollectID         string  `json:"collect_id"`
	SchoolID          string  `json:"school_id"`
	Gateway           string  `json:"gateway"`
	OrderAmount       float64 `json:"order_amount"`
	TransactionAmount float64 `json:"transaction_amount"`
	Status            string  `json:"status"`
	CustomOrderID     string  `json:"custom_order_id"`
}

// PagedTransactions is a page of reconciled transactions plus its counts.
type PagedTransactions struct {
	Data        []TransactionView `json:"data"`
	ResultCount int               `json:"resultCount"`
	TotalCount  int64             `json:"totalCount"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
}

// StatusUpdateResult confirms a manual status update.
type StatusUpdateResult struct {
	Message   string `json:"message"`
	CollectID string `json:"collect_id"`
	NewStatus string `json:"new_status"`
}
