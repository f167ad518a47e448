package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/sapliy/minibank/internal/ledger"
	"github.com/sapliy/minibank/internal/storage"
)

// openLedger hydrates the account store from the configured snapshot and
// wires the ledger on top of it. A missing snapshot starts empty; corrupt
// data is fatal unless fresh_start is set.
func openLedger() (*ledger.Store, *ledger.Ledger, error) {
	gateway := storage.NewJSONGateway(viper.GetString("data_file"))
	store := ledger.NewStore(ledger.NewNumberGenerator(), viper.GetInt64("routing_number"))

	accounts, err := gateway.Load(context.Background())
	switch {
	case err == nil:
		if herr := store.Hydrate(accounts); herr != nil {
			if !viper.GetBool("fresh_start") {
				return nil, nil, fmt.Errorf("snapshot cannot be trusted (re-run with --fresh to start empty): %w", herr)
			}
			store = ledger.NewStore(ledger.NewNumberGenerator(), viper.GetInt64("routing_number"))
		}
	case errors.Is(err, storage.ErrNoSnapshot):
		// First run.
	case errors.Is(err, storage.ErrCorruptData):
		if !viper.GetBool("fresh_start") {
			return nil, nil, fmt.Errorf("refusing to start (re-run with --fresh to start empty): %w", err)
		}
	default:
		return nil, nil, err
	}

	led := ledger.New(store, gateway,
		ledger.WithLogger(logger.Logger),
		ledger.WithLockTimeout(viper.GetDuration("lock_timeout")),
	)
	return store, led, nil
}
