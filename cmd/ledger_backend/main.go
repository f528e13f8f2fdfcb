package main

import (
	"os"

	"github.com/SscSPs/ledger_engine/cmd/ledger_backend/cmd"
)

// @title Ledger Engine API
// @version 1.0
// @description Multi-currency double-entry ledger: currencies, exchange rates, accounts, journal entries and vouchers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
