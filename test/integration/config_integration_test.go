//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-sync/internal/adapters/storage"
	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/config"
)

const configsDir = "../../configs"

// TestConfig_ShippedProfilesValidate verifies that base.yaml combined with
// every shipped profile passes validation.
func TestConfig_ShippedProfilesValidate(t *testing.T) {
	entries, err := os.ReadDir(configsDir)
	require.NoError(t, err)

	var profiles []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") || name == "base.yaml" {
			continue
		}

		profiles = append(profiles, strings.TrimSuffix(name, ".yaml"))
	}

	require.NotEmpty(t, profiles)

	for _, profile := range profiles {
		t.Run(profile, func(t *testing.T) {
			cfg, err := config.LoadFrom(configsDir, profile)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Contains(t, []string{"readd", "respect"}, cfg.Sync.DeletionPolicy)
		})
	}
}

// TestConfig_ProdRespectsDeletions verifies the prod profile overrides the
// base deletion policy.
func TestConfig_ProdRespectsDeletions(t *testing.T) {
	base, err := config.LoadFrom(configsDir, "")
	require.NoError(t, err)

	prod, err := config.LoadFrom(configsDir, "prod")
	require.NoError(t, err)

	assert.Equal(t, "readd", base.Sync.DeletionPolicy)
	assert.Equal(t, "respect", prod.Sync.DeletionPolicy)
	assert.Equal(t, "json", prod.Log.Format)
}

// TestConfig_EnvDrivesTheStack verifies that environment overrides reach the
// storage backend and the remote gateway built from the loaded config.
func TestConfig_EnvDrivesTheStack(t *testing.T) {
	remote := newStubRemote(t)
	remote.set(remoteRecord{ID: 3, Title: "Configured"})

	dbPath := filepath.Join(t.TempDir(), "env.db")

	t.Setenv("APP_STORAGE__DRIVER", "sqlite")
	t.Setenv("APP_STORAGE__SQLITE_PATH", dbPath)
	t.Setenv("APP_SERVICES__QUOTE__BASE_URL", remote.server.URL)
	t.Setenv("APP_SYNC__REMOTE_CATEGORY", "Configured")
	t.Setenv("APP_CLIENT__RETRY__MAX_ATTEMPTS", "1")

	cfg, err := config.LoadFrom(configsDir, "test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	kv, err := storage.OpenKV(storage.Options{
		Driver:     cfg.Storage.Driver,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	require.NoError(t, err)

	store := storage.NewStore(kv, nil)
	t.Cleanup(func() { _ = store.Close() })
	assert.Equal(t, "sqlite", kv.Driver())

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
	})
	require.NoError(t, err)

	gateway := acl.NewQuoteGateway(acl.QuoteGatewayConfig{
		Client:          client,
		ListPath:        cfg.Services.Quote.ListPath,
		DefaultCategory: cfg.Sync.RemoteCategory,
	})

	ctx := context.Background()

	fetched := gateway.FetchRemoteQuotes(ctx)
	require.Len(t, fetched, 1)
	assert.Equal(t, "Configured", fetched[0].Category)
	assert.Equal(t, domain.ServerID("3"), fetched[0].ID)

	require.NoError(t, store.SaveCollection(ctx, fetched))
	require.NoError(t, gateway.Check(ctx))

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "sqlite file created at the configured path")
}
