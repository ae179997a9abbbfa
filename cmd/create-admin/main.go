// Command create-admin adds an admin account to the configured datastore.
//
//	go run ./cmd/create-admin -name "Root" -username root -email root@example.com -password s3cret!
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventregistration/config"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/domain"
	"eventregistration/internal/repository"
	"eventregistration/internal/services"
)

func main() {
	name := flag.String("name", "", "display name")
	username := flag.String("username", "", "login username")
	emailAddr := flag.String("email", "", "email address")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if cfg.DataStore == "memory" {
		fmt.Fprintln(os.Stderr, "DATA_STORE=memory: an admin created here would not outlive this process")
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stores, err := repository.Open(ctx, cfg.DataStore, cfg.DBUrl, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer stores.Close()

	svc := services.NewAuthService(stores.Admins, auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWT(cfg.JWTSecret), cfg.JWTExpiry)
	admin, err := svc.Register(ctx, &domain.AdminSignUp{
		Name:     *name,
		Username: *username,
		Email:    *emailAddr,
		Password: *password,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		fmt.Fprintln(os.Stderr, "username or email already exists")
		os.Exit(1)
	case err != nil:
		fmt.Fprintln(os.Stderr, "create admin:", err)
		os.Exit(1)
	}
	fmt.Printf("admin %s created with id %s\n", admin.Username, admin.ID)
}
