package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/karyhub/dealflow/internal/blob"
	"github.com/karyhub/dealflow/internal/config"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/prefs"
	"github.com/karyhub/dealflow/internal/service"
	"github.com/karyhub/dealflow/internal/storage"
	"github.com/karyhub/dealflow/internal/view"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initBlobStore opens the attachment blob store.
func initBlobStore() (*blob.FileStore, error) {
	dir := viper.GetString("blobs.dir")
	if dir == "" {
		dir = config.BlobDir()
	}
	return blob.NewFileStore(config.ExpandPath(dir))
}

// openPrefs opens the UI preference store.
func openPrefs() (*prefs.Store, error) {
	return prefs.Open(config.PrefsPath())
}

// loadRecords joins the pipeline with account names into view records.
func loadRecords(ctx context.Context, store service.Storage) ([]view.Record, error) {
	deals, err := store.GetDeals(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	records := make([]view.Record, 0, len(deals))
	for _, d := range deals {
		records = append(records, view.Record{Deal: d, Company: names[d.AccountID]})
	}
	return records, nil
}

// patchLastActivity builds the patch that bumps a deal's last-activity
// date.
func patchLastActivity(date string) service.DealPatch {
	return service.DealPatch{LastActivityDate: &date}
}

// resolveAccount finds an account by name, creating it when asked.
func resolveAccount(ctx context.Context, store service.Storage, name string, create bool) (*model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	account, err := store.GetAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if account != nil || !create {
		return account, nil
	}

	account = &model.Account{Name: name}
	if err := store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
