package main

import (
	"context"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// expects MONGO_URI and JWT_SECRET env vars
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "taskboard"
	}

	client, database := db.Connect(uri, dbName)
	defer client.Disconnect(context.Background())

	repo := repository.NewUserRepository(database)
	ctx := context.Background()

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "tester@example.com"
	}

	// try to find existing user
	existing, err := repo.GetByEmail(ctx, email)
	var u *domain.User
	if err == nil {
		u = existing
		log.Printf("user already exists id=%s\n", u.ID.Hex())
	} else {
		u = &domain.User{
			Email: email,
			Name:  "Tester",
		}

		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}

		log.Printf("user created id=%s\n", u.ID.Hex())
	}

	// verify read
	u2, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		log.Fatalf("get by email failed: %v", err)
	}
	log.Printf("fetched user id=%s email=%s name=%s created_at=%v\n", u2.ID.Hex(), u2.Email, u2.Name, u2.CreatedAt)

	// initialize JWT and print token
	service.InitJWT()
	token, err := service.GenerateJWT(u2.ID.Hex())
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
