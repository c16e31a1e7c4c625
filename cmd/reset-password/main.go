package main

import (
	"flag"
	"log"

	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/pkg/config"
	"go-affiliate-ops/pkg/database"

	"github.com/google/uuid"
)

func main() {
	username := flag.String("username", "superadmin", "username of the account to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("❌ -password is required and must be at least 6 characters")
	}

	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DB, cfg.Timezone)
	userRepo := repository.NewUserRepo(db)

	// 3. Find user
	user, err := userRepo.FindByUsername(*username)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *username, err)
	}

	// 4. Hash new password
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update, and log out every open session of the account
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}
	if err := userRepo.UpdateTokenVersion(user.ID, uuid.New().String()); err != nil {
		log.Fatalf("❌ Failed to reset session: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *username)
}
