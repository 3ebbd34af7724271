package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
)

func TestLogs(t *testing.T) {
	var gotPage, gotSize string
	r := chi.NewRouter()
	r.Get("/audit-logs", func(w http.ResponseWriter, req *http.Request) {
		gotPage = req.URL.Query().Get("page")
		gotSize = req.URL.Query().Get("size")
		w.Write([]byte(`[{"id":3,"action":"CREATE_ACCOUNT","entityType":"ACCOUNT","details":"Vault","createdAt":"2026-08-30T10:00:00Z"}]`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	s := NewService(api.New(srv.URL))

	entries, err := s.Logs(context.Background(), -1, 0)
	require.NoError(t, err)
	require.Equal(t, "0", gotPage)
	require.Equal(t, "20", gotSize, "size falls back to the service default")
	require.Len(t, entries, 1)
	require.Equal(t, "CREATE_ACCOUNT", entries[0].Action)
	require.Equal(t, "ACCOUNT", entries[0].EntityType)
}

func TestLogsUnauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/audit-logs", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"missing bearer token"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	s := NewService(api.New(srv.URL))

	_, err := s.Logs(context.Background(), 0, 20)
	require.True(t, api.IsStatus(err, http.StatusUnauthorized))
}
