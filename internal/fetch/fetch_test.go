package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_ReturnsBodyAndSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{UserAgent: "prospect-test/1.0"})
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", body)
	assert.Equal(t, "prospect-test/1.0", gotUA)
}

func TestFetch_DefaultUserAgentLooksLikeBrowser(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{Timeout: 20 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetch_BadURL(t *testing.T) {
	f := NewHTTPFetcher(Options{})
	_, err := f.Fetch(context.Background(), "http://\x00bad")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "create request") || strings.Contains(err.Error(), "get"))
}
