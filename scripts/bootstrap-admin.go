package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cadastra/cadastra/internal/metrics"
	"github.com/cadastra/cadastra/internal/service"
	"github.com/cadastra/cadastra/internal/store/postgres"
)

type output struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@cadastra.local", "Admin account email")
		name        = flag.String("name", "Bootstrap Admin", "Admin account name")
		password    = flag.String("password", "", "Admin password; generated when empty")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	generated := false
	if *password == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintln(os.Stderr, "generate password:", err)
			os.Exit(1)
		}
		*password = hex.EncodeToString(buf)
		generated = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := postgres.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer st.Close()

	svc := service.NewAccountService(st.Accounts(), metrics.NewNoop())
	account, err := svc.CreateAccount(ctx, service.CreateAccountInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     "admin",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "create admin:", err)
		os.Exit(1)
	}

	out := output{AccountID: account.ID, Email: account.Email}
	if generated {
		out.Password = *password
	}

	switch *format {
	case "json":
		_ = json.NewEncoder(os.Stdout).Encode(out)
	default:
		fmt.Println("account_id:", out.AccountID)
		fmt.Println("email:", out.Email)
		if generated {
			fmt.Println("password:", out.Password)
		}
	}
}
