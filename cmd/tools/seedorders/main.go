package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

var firstNames = []string{
	"Ava", "Liam", "Maya", "Noah", "Zoe", "Ethan", "Ivy", "Lucas",
	"Nina", "Owen", "Ruby", "Theo", "Elsa", "Felix", "Iris", "Jonah",
}

var lastNames = []string{
	"Anders", "Brooks", "Calder", "Devlin", "Ellis", "Foster", "Greer",
	"Hale", "Ibarra", "Jensen", "Keller", "Lowell", "Mercer", "Nolan",
}

var statuses = []model.OrderStatus{
	model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusRefunded,
}

func main() {
	_ = godotenv.Load()

	count := flag.Int("n", 200, "number of orders to create")
	addr := flag.String("addr", envOr("ORDER_STORE_ADDRESS", "http://localhost:8000"), "order store base URL")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	client, err := orderstore.NewHTTPClient(*addr, 10*time.Second, 2, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid store address: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for i := 0; i < *count; i++ {
		draft := randomDraft(rng)
		if _, err := client.Create(ctx, draft); err != nil {
			logger.Error("create failed", slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		created++
	}

	fmt.Printf("created %d of %d orders\n", created, *count)
	if created == 0 {
		os.Exit(1)
	}
}

func randomDraft(rng *rand.Rand) model.OrderDraft {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	name := first + " " + last

	status := statuses[rng.Intn(len(statuses))]
	payment := model.PaymentStatusPaid
	if rng.Intn(3) == 0 {
		payment = model.PaymentStatusUnpaid
	}

	// Spread order dates over the last 60 days so overdue and
	// this-month buckets both get populated.
	orderDate := time.Now().UTC().AddDate(0, 0, -rng.Intn(60))

	return model.OrderDraft{
		CustomerName:  name,
		CustomerEmail: fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
		OrderDate:     orderDate.Format(time.RFC3339),
		Status:        status,
		PaymentStatus: payment,
		TotalAmount:   decimal.NewFromInt(int64(rng.Intn(49000)+1000)).Div(decimal.NewFromInt(100)),
	}
}


func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
