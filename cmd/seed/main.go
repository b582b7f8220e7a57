package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/noteplus/noteplus-api/config"
	"github.com/noteplus/noteplus-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@noteplus.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, gender, email, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, "other", email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	var noteID string
	err = db.QueryRow(`
		INSERT INTO notes (owner, title, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, "Groceries", "Buy milk and eggs for the week").Scan(&noteID)
	if err != nil {
		log.Fatalf("failed to seed note: %v", err)
	}
	fmt.Printf("seeded note: id=%s\n", noteID)
}
