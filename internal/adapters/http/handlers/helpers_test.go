package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/adapters/schedule"
	"github.com/jsamuelsen/quote-sync/internal/adapters/storage"
	"github.com/jsamuelsen/quote-sync/internal/app"
	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/mocks"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type testApp struct {
	services *app.Services
	remote   *mocks.MockRemoteGateway
	router   *gin.Engine
}

// newTestApp wires the application over an in-memory badger store and a
// mocked remote, and registers every API route under /api/v1.
func newTestApp(t *testing.T, seed ...domain.Quote) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	kv, err := storage.OpenKV(storage.Options{Driver: storage.DriverBadger, InMemory: true})
	require.NoError(t, err)

	persist := storage.NewStore(kv, logger)
	t.Cleanup(func() { _ = persist.Close() })

	session, err := storage.NewSessionStore(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	remote := mocks.NewMockRemoteGateway(t)

	services := app.New(app.Deps{
		Persist:   persist,
		Session:   session,
		Remote:    remote,
		Scheduler: schedule.NewManual(),
		Clock:     ports.ClockFunc(func() time.Time { return testNow }),
		Logger:    logger,
	})

	require.NoError(t, services.Quotes.Restore(context.Background()))
	require.NoError(t, services.Store.Append(context.Background(), seed...))

	router := gin.New()
	api := router.Group("/api/v1")
	NewQuoteHandler(services.Quotes).RegisterQuoteRoutes(api)
	NewSyncHandler(services.Sync).RegisterSyncRoutes(api)
	NewNotificationHandler(services.Notifications).RegisterNotificationRoutes(api)

	return &testApp{services: services, remote: remote, router: router}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	return w
}

func q(id, text, category string, source domain.Source) domain.Quote {
	return domain.Quote{
		ID:           id,
		Text:         text,
		Category:     category,
		LastModified: "2024-01-01T00:00:00.000Z",
		Source:       source,
	}
}
