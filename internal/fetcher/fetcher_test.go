package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
)

func settings() config.FetchSettings {
	return config.FetchSettings{TimeoutSeconds: 5, UserAgent: "xml2csv test"}
}

func TestFetchReturnsBodyAndSendsUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "xml2csv test", r.Header.Get("User-Agent"))
		w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	body, err := New(settings()).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<feed/>", string(body))
}

func TestFetchRejectsNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New(settings()).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := New(settings()).Fetch(ctx, server.URL)
	assert.Error(t, err)
}
