package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestFetcher(client *http.Client, proxies []ProxyTemplate) *Fetcher {
	return NewFetcherWithClient(client, proxies, 2*time.Second, zap.NewNop())
}

func TestFetchHTMLDirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<html>direct</html>"))
	}))
	defer server.Close()

	f := newTestFetcher(server.Client(), nil)
	html, err := f.FetchHTML(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<html>direct</html>" {
		t.Errorf("html = %q", html)
	}
}

func TestFetchHTMLProxyFallback(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer direct.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxied</html>"))
	}))
	defer proxy.Close()

	// The first proxy points back at the failing server; the second works.
	proxies := []ProxyTemplate{
		func(string) string { return direct.URL },
		func(string) string { return proxy.URL },
	}

	f := newTestFetcher(http.DefaultClient, proxies)
	html, err := f.FetchHTML(context.Background(), direct.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<html>proxied</html>" {
		t.Errorf("html = %q", html)
	}
}

func TestFetchHTMLAllAttemptsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	proxies := []ProxyTemplate{
		func(string) string { return server.URL + "/a" },
		func(string) string { return server.URL + "/b" },
	}

	f := newTestFetcher(server.Client(), proxies)
	_, err := f.FetchHTML(context.Background(), server.URL)
	if !errors.Is(err, ErrAllAttemptsFailed) {
		t.Fatalf("expected ErrAllAttemptsFailed, got %v", err)
	}
}

func TestResolveURLFollowsRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/start":
			http.Redirect(w, r, "/final", http.StatusMovedPermanently)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	f := newTestFetcher(server.Client(), nil)
	got := f.ResolveURL(context.Background(), server.URL+"/start")
	if got != server.URL+"/final" {
		t.Errorf("resolved = %q, want %q", got, server.URL+"/final")
	}
}

func TestResolveURLFailureKeepsOriginal(t *testing.T) {
	f := newTestFetcher(http.DefaultClient, nil)
	original := "http://127.0.0.1:1/unreachable"
	if got := f.ResolveURL(context.Background(), original); got != original {
		t.Errorf("resolved = %q, want original", got)
	}
}

func TestFetchHTMLContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(server.Client(), nil)
	if _, err := f.FetchHTML(ctx, server.URL); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
