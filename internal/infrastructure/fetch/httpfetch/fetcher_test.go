package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

func TestFetchDetectsTextDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("hello document"))
	}))
	defer srv.Close()

	fetcher := New(5*time.Second, nil)
	doc, err := fetcher.Fetch(context.Background(), srv.URL+"/notes")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Format != domain.FormatTXT {
		t.Fatalf("expected txt format, got %s", doc.Format)
	}
	if doc.ContentHash == "" {
		t.Fatalf("expected content hash")
	}
	if string(doc.Raw) != "hello document" {
		t.Fatalf("unexpected raw payload: %q", doc.Raw)
	}
}

func TestFetchSameBytesSameHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("stable content"))
	}))
	defer srv.Close()

	fetcher := New(5*time.Second, nil)
	first, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if first.ContentHash != second.ContentHash {
		t.Fatalf("expected identical hashes, got %s vs %s", first.ContentHash, second.ContentHash)
	}
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	fetcher := New(5*time.Second, nil)
	_, err := fetcher.Fetch(context.Background(), "ftp://example.com/doc.pdf")
	if !domain.IsKind(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := New(5*time.Second, nil)
	_, err := fetcher.Fetch(context.Background(), srv.URL+"/doc.txt")
	if !domain.IsKind(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchFailsOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	fetcher := New(2*time.Second, nil)
	_, err := fetcher.Fetch(context.Background(), addr+"/doc.txt")
	if !domain.IsKind(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestDetectFormatPrecedence(t *testing.T) {
	cases := []struct {
		name        string
		url         string
		contentType string
		raw         []byte
		want        domain.Format
	}{
		{"extension wins", "https://x/doc.pdf", "application/octet-stream", []byte("anything"), domain.FormatPDF},
		{"extension with query", "https://x/doc.docx?sig=abc", "", []byte("anything"), domain.FormatDOCX},
		{"content type", "https://x/download", "application/pdf", []byte("anything"), domain.FormatPDF},
		{"pdf magic", "https://x/blob", "application/octet-stream", []byte("%PDF-1.7 rest"), domain.FormatPDF},
		{"zip magic", "https://x/blob", "application/octet-stream", []byte("PK\x03\x04rest"), domain.FormatDOCX},
		{"utf8 fallback", "https://x/blob", "", []byte("plain words"), domain.FormatTXT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(tc.url, tc.contentType, tc.raw)
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	_, err := DetectFormat("https://x/blob", "application/octet-stream", []byte{0x00, 0xff, 0xfe})
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
