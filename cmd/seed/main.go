package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/schoolpay/schoolpay-gobackend/internal/config"
	"github.com/schoolpay/schoolpay-gobackend/internal/db"
	"github.com/schoolpay/schoolpay-gobackend/internal/models"
	"github.com/schoolpay/schoolpay-gobackend/internal/repositories"
	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

var (
	schools  = []string{"65b0e6293e9f76a9694d84b4", "65b0e6293e9f76a9694d84b5", "65b0e6293e9f76a9694d84b6"}
	gateways = []string{"PhonePe", "Razorpay", "CashFree"}
	statuses = []string{"SUCCESS", "PENDING", "FAILED"}
	methods  = []string{"upi", "netbanking", "card"}
)

// Seeds demo collect requests. Roughly one in three transactions is left
// without a status record so the UNKNOWN/zero-amount default path shows up
// in the dashboard.
func main() {
	count := flag.Int("count", 25, "number of transactions to insert")
	flag.Parse()

	_ = godotenv.Load(".env")
	cfg := config.Load()
	log.Init("schoolpay-seed", log.WithConsoleLogger())
	logger := log.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer db.Disconnect(ctx, client)

	database := client.Database(cfg.Mongo.Database)
	transactionRepo := repositories.NewTransactionRepository(database)
	statusRepo := repositories.NewStatusRepository(database)

	seeded := 0
	for i := 0; i < *count; i++ {
		transaction := &models.Transaction{
			SchoolID:      schools[i%len(schools)],
			TrusteeID:     "65b0e552dd31950a9b41c5ba",
			Gateway:       gateways[i%len(gateways)],
			OrderAmount:   float64(500 + 100*(i%20)),
			CustomOrderID: "ORD-" + uuid.NewString(),
		}

		collectID, err := transactionRepo.Insert(ctx, transaction)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to insert transaction")
		}

		if i%3 != 0 {
			status := &models.TransactionStatus{
				CollectID:         collectID,
				Status:            statuses[i%len(statuses)],
				PaymentMethod:     methods[i%len(methods)],
				Gateway:           transaction.Gateway,
				BankReference:     fmt.Sprintf("BNK%06d", 100000+i),
				TransactionAmount: transaction.OrderAmount,
			}
			if _, err := statusRepo.Insert(ctx, status); err != nil {
				logger.Fatal().Err(err).Msg("failed to insert status")
			}
		}
		seeded++
	}

	logger.Info().Int("count", seeded).Msg("seeded transactions")
}
