package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/razorpay"
)

const pageSize = 50

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-payment/main.go <receipt>")
		fmt.Println("Example: go run cmd/find-payment/main.go \"rcpt_1718000000000\"")
		os.Exit(1)
	}

	targetReceipt := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := razorpay.NewClient(cfg.Razorpay, logger)

	fmt.Printf("🔍 Searching for receipt: %s\n\n", targetReceipt)

	ctx := context.Background()
	skip := 0
	scanned := 0

	for {
		page, err := client.ListOrders(ctx, pageSize, skip)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list gateway orders: %v\n", err)
			os.Exit(1)
		}

		for _, order := range page.Items {
			scanned++
			if order.Receipt != targetReceipt {
				continue
			}

			fmt.Printf("✅ Found gateway order!\n\n")
			out, _ := json.MarshalIndent(order, "", "  ")
			fmt.Println(string(out))
			return
		}

		if len(page.Items) < pageSize {
			break
		}
		skip += pageSize
	}

	fmt.Printf("❌ Receipt %s not found (%d orders scanned)\n", targetReceipt, scanned)
	os.Exit(1)
}
