package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/database"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"github.com/pageza/pantry-tracker/backend/internal/repository"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// demoPurchase is bought once per entry in daysAgo, oldest first.
type demoPurchase struct {
	name     string
	category string
	unit     string
	quantity float64
	daysAgo  []int
}

var demoPurchases = []demoPurchase{
	{name: "Whole Milk", category: "dairy", unit: "gallon", quantity: 1, daysAgo: []int{15, 8, 2}},
	{name: "Bananas", category: "produce", unit: "bunch", quantity: 6, daysAgo: []int{5}},
	{name: "Chicken Thighs", category: "meat", unit: "lb", quantity: 2, daysAgo: []int{4}},
	{name: "Sourdough Bread", category: "bakery", unit: "loaf", quantity: 1, daysAgo: []int{12}},
	{name: "Black Beans", category: "canned", unit: "can", quantity: 4, daysAgo: []int{40}},
	{name: "Frozen Peas", category: "frozen", unit: "bag", quantity: 1, daysAgo: []int{30}},
}

var demoCupboard = []types.AddManualItemRequest{
	{ItemName: "Jasmine Rice", Quantity: strPtr("2"), Unit: strPtr("bag"), Category: strPtr("pantry")},
	{ItemName: "Olive Oil", Unit: strPtr("bottle"), Category: strPtr("pantry"), ShelfLifeDays: intPtr(365)},
	{ItemName: "Basil", Category: strPtr("produce"), Notes: strPtr("windowsill pot")},
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func main() {
	userFlag := flag.String("user", "", "User ID to seed (a new one is generated when empty)")
	flag.Parse()

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("Invalid user ID %q: %v", *userFlag, err)
		}
		userID = parsed
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()

	history := repository.NewPurchaseHistoryRepository(db)
	purchases := service.NewPurchaseService(history, service.NewLocalKeyLocker())
	pantryService := service.NewPantryService(
		history,
		repository.NewCupboardItemRepository(db),
		repository.NewReceiptItemRepository(db),
		repository.NewShoppingListRepository(db),
		cfg.Pantry.Thresholds(),
	)

	log.Printf("Seeding pantry for user %s...", userID)

	receiptID := uuid.New()
	for _, p := range demoPurchases {
		for _, ago := range p.daysAgo {
			category := p.category
			if _, err := purchases.RecordPurchase(ctx, userID, p.name, now.AddDate(0, 0, -ago), p.quantity, &category); err != nil {
				log.Fatalf("Failed to record purchase of %s: %v", p.name, err)
			}
		}

		line := models.ReceiptItem{
			ReceiptID:      receiptID,
			UserID:         userID,
			Name:           p.name,
			NormalizedName: pantry.NormalizeItemName(p.name),
			Quantity:       strPtr(pantry.FormatQuantity(p.quantity)),
			Unit:           strPtr(p.unit),
			Category:       strPtr(p.category),
		}
		if err := db.WithContext(ctx).Create(&line).Error; err != nil {
			log.Fatalf("Failed to create receipt line for %s: %v", p.name, err)
		}
		log.Printf("✅ Recorded %d purchase(s) of %s", len(p.daysAgo), p.name)
	}

	for i := range demoCupboard {
		item, err := pantryService.AddManualItem(ctx, userID, &demoCupboard[i])
		if err != nil {
			log.Fatalf("Failed to add %s: %v", demoCupboard[i].ItemName, err)
		}
		log.Printf("✅ Added %s to the cupboard", item.ItemName)
	}

	stats, err := pantryService.GetCupboardStats(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to load stats: %v", err)
	}

	log.Println("\n📋 Pantry Summary:")
	log.Println("==================")
	log.Printf("Visible items: %d", stats.TotalItems)
	log.Printf("In stock: %d, running low: %d, needs restock: %d", stats.InStock, stats.RunningLow, stats.NeedsRestock)

	token, err := service.NewAuthService(cfg.JWTSecret).GenerateToken(&types.TokenClaims{
		UserID:   userID,
		Username: "pantry-demo",
	})
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	log.Println("\n🔑 Bearer token for the seeded user:")
	log.Println(token)
}
