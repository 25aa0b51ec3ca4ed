package main

import (
	"log"
	"os"
	"time"

	"checkinly-be/internal/model"
	"checkinly-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	success := color.New(color.FgGreen).PrintfFunc()
	skip := color.New(color.FgYellow).PrintfFunc()

	log.Println("Seeding demo host...")

	hostEmail := "demo@checkinly.test"
	var existing model.User
	if err := db.Where("email = ?", hostEmail).First(&existing).Error; err == nil {
		skip("Host '%s' already exists, skipping seed\n", hostEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash demo password:", err)
	}

	host := model.User{
		ID:           uuid.New(),
		Email:        hostEmail,
		FullName:     "Demo Host",
		PasswordHash: string(hash),
		Role:         "host",
	}
	if err := db.Create(&host).Error; err != nil {
		log.Fatal("Error: Failed to create demo host:", err)
	}
	success("Created host: %s\n", host.Email)

	properties := []model.Property{
		{ID: uuid.New(), HostID: host.ID, Name: "Canal View Loft", Address: "Prinsengracht 42", City: "Amsterdam", Country: "NL", MaxGuests: 4},
		{ID: uuid.New(), HostID: host.ID, Name: "Old Town Studio", Address: "Karlova 12", City: "Prague", Country: "CZ", MaxGuests: 2},
	}
	for _, p := range properties {
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating property '%s': %v", p.Name, err)
			continue
		}
		success("Created property: %s (%s)\n", p.Name, p.City)
	}

	guests := []model.Guest{
		{ID: uuid.New(), HostID: host.ID, FullName: "Alice Walker", Email: "alice@example.com", Phone: "+31612345678"},
		{ID: uuid.New(), HostID: host.ID, FullName: "Bram Jansen", Email: "bram@example.com", Phone: "+31687654321"},
	}
	for _, g := range guests {
		if err := db.Create(&g).Error; err != nil {
			log.Printf("Error creating guest '%s': %v", g.FullName, err)
			continue
		}
		success("Created guest: %s\n", g.FullName)
	}

	deposit := model.Deposit{
		ID:                  uuid.New(),
		Amount:              50000,
		Currency:            "eur",
		Status:              "captured",
		RefundableRemaining: 50000,
		ExternalChargeRef:   "seed-" + uuid.NewString(),
		ExternalPaymentRef:  "seed-" + uuid.NewString(),
		GuestID:             guests[0].ID,
		PropertyID:          properties[0].ID,
		Description:         "Seeded demo deposit",
		CreatedAt:           time.Now(),
	}
	if err := db.Create(&deposit).Error; err != nil {
		log.Printf("Error creating demo deposit: %v", err)
	} else {
		success("Created deposit: %s (%d %s held)\n", deposit.ID, deposit.Amount, deposit.Currency)
	}

	log.Println("Seeding completed!")
}
