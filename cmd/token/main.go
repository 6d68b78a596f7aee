// Command token mints an access token for an existing borrower account, with
// the role currently stored for it. It is meant for operators and local
// testing; end-user sign-in is handled elsewhere.
//
// Usage:
//
//	token --user=<uuid>
//
// Reads the same configuration as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/bookloan-backend/internal/auth"
	"github.com/heartmarshall/bookloan-backend/internal/config"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "borrower id")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: token --user=<uuid>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	b, err := user.New(pool).GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No account with id %s.\n", userID)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("load account: %v", err)
	}

	m := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := m.GenerateAccessToken(b.ID, b.Role)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
