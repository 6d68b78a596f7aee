// Command promote grants the ADMIN role to a borrower account by email
// address. It is used to bootstrap the first administrator.
//
// Usage:
//
//	promote --email=user@example.com [--revoke]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	revoke := flag.Bool("revoke", false, "demote the account back to MEMBER")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--revoke]")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	role := domain.RoleAdmin
	if *revoke {
		role = domain.RoleMember
	}

	b, err := user.New(pool).SetRole(ctx, *email, role)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No account found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("set role: %v", err)
	}

	fmt.Printf("Account %s (%q) is now %s.\n", b.ID, b.Email, b.Role)
}
