// Command seed provisions a checking account with an opening balance and
// withdrawal limits. Meant for local development and demo environments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cashfold/checking/infra/initializer"
	"github.com/cashfold/checking/pkg/config"
	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/money"
	"github.com/fatih/color"
)

func main() {
	var (
		userID       = flag.String("user", "", "user ID to provision (required)")
		currencyCode = flag.String("currency", currency.DefaultCurrency.String(), "account currency code")
		opening      = flag.String("opening-balance", "1000.00", "opening deposit amount")
		daily        = flag.String("daily-limit", "500.00", "daily withdrawal cap")
		monthly      = flag.String("monthly-limit", "5000.00", "monthly withdrawal cap")
		envFile      = flag.String("env", ".env", "environment file to load")
	)
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -user <user-id> [-currency USD] [-opening-balance 1000.00]")
		os.Exit(2)
	}

	if err := run(*userID, *currencyCode, *opening, *daily, *monthly, *envFile); err != nil {
		color.Red("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(userID, currencyCode, opening, daily, monthly, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	deps, err := initializer.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	code := currency.Code(currencyCode)
	if !code.IsValidFormat() || !currency.IsSupported(code) {
		return fmt.Errorf("unsupported currency %q", currencyCode)
	}

	openingAmount, err := money.New(opening, code)
	if err != nil {
		return fmt.Errorf("parse opening balance: %w", err)
	}
	dailyCap, err := money.New(daily, code)
	if err != nil {
		return fmt.Errorf("parse daily limit: %w", err)
	}
	monthlyCap, err := money.New(monthly, code)
	if err != nil {
		return fmt.Errorf("parse monthly limit: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	acct, err := deps.Accounts.CreateAccount(ctx, userID, code)
	switch {
	case err == nil:
		color.Green("account created: %s", acct.ID)
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		color.Yellow("account already exists for %s/%s, reusing it", userID, code)
	default:
		return fmt.Errorf("create account: %w", err)
	}

	if openingAmount.IsPositive() {
		tx, err := deps.Accounts.Deposit(ctx, userID, code, openingAmount, "opening balance")
		if err != nil {
			return fmt.Errorf("opening deposit: %w", err)
		}
		color.Green("opening deposit committed: %s %s", tx.Amount.StringAmount(), code)
	}

	limit, err := deps.Withdrawals.SetLimits(ctx, userID, code, dailyCap, monthlyCap)
	if err != nil {
		return fmt.Errorf("set withdrawal limits: %w", err)
	}
	color.Green("withdrawal limits set: daily %s, monthly %s",
		limit.Daily.StringAmount(), limit.Monthly.StringAmount())

	color.Cyan("seeded %s/%s", userID, code)
	return nil
}
