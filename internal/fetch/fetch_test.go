package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexsift/lexsift/internal/fetch"
)

func TestGetContentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentences.tsv")
	content := "1\teng\tI am a cat.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	reader, err := fetch.GetContent(context.Background(), path)
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading content: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}
}

func TestGetContentMissingFile(t *testing.T) {
	_, err := fetch.GetContent(context.Background(), "/path/that/does/not/exist.tsv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error should mention missing file, got %v", err)
	}
}

func TestGetContentHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("2\teng\tThe dog runs.\n"))
	}))
	defer server.Close()

	reader, err := fetch.GetContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading content: %v", err)
	}
	if !strings.Contains(string(data), "The dog runs.") {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestGetContentHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := fetch.GetContent(context.Background(), server.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestGetContentStdin(t *testing.T) {
	reader, err := fetch.GetContent(context.Background(), "-")
	if err != nil {
		t.Fatalf("GetContent(-) error = %v", err)
	}
	if reader == nil {
		t.Fatal("stdin reader is nil")
	}
	reader.Close()
}

func TestGetContentUnreachableURL(t *testing.T) {
	_, err := fetch.GetContent(context.Background(), "http://invalid-domain-that-definitely-does-not-exist.local")
	if err == nil {
		t.Fatal("expected error for unreachable URL")
	}
	if !strings.Contains(err.Error(), "failed to fetch URL") {
		t.Errorf("error should mention URL fetching, got %v", err)
	}
}
