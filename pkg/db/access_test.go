package db

import (
	"context"
	"errors"
	"testing"
)

type access struct {
	url       string
	status    int
	errorType string
	success   bool
}

func TestTrackAccess(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	history := []access{
		{"https://www.example.es/servicios/fiscal.html", 200, "", true},
		{"https://www.example.es/contacto", 0, "timeout", false},
		{"https://www.example.es/servicios/fiscal.html", 503, "http_status", false},
		{"https://www.example.es/contacto", 200, "", true},
	}
	for _, a := range history {
		if err := db.TrackAccess(ctx, a.url, a.status, a.errorType, a.success); err != nil {
			t.Fatalf("TrackAccess(%s) error = %v", a.url, err)
		}
	}

	var urls int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM urls").Scan(&urls); err != nil {
		t.Fatalf("count urls: %v", err)
	}
	if urls != 2 {
		t.Errorf("urls rows = %d, want 2 (repeat scrapes reuse the url row)", urls)
	}

	tests := []struct {
		url      string
		want     access
		attempts int
	}{
		{"https://www.example.es/servicios/fiscal.html", history[2], 2},
		{"https://www.example.es/contacto", history[3], 2},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			urlID, err := db.GetURLID(ctx, tt.url)
			if err != nil {
				t.Fatalf("GetURLID() error = %v", err)
			}

			last, err := db.GetLastAccess(ctx, urlID)
			if err != nil || last == nil {
				t.Fatalf("GetLastAccess() = %v, %v", last, err)
			}
			if last.StatusCode != tt.want.status || last.ErrorType != tt.want.errorType || last.Success != tt.want.success {
				t.Errorf("last access = %+v, want %+v", last, tt.want)
			}

			var attempts int
			if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM url_accesses WHERE url_id = ?", urlID).Scan(&attempts); err != nil {
				t.Fatalf("count accesses: %v", err)
			}
			if attempts != tt.attempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.attempts)
			}
		})
	}
}

func TestTrackAccess_StoresURLParts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	raw := "https://www.example.es/servicios/fiscal.html?utm_source=news#intro"
	if err := db.TrackAccess(ctx, raw, 200, "", true); err != nil {
		t.Fatalf("TrackAccess() error = %v", err)
	}

	var canonical, domain, path, fragment string
	err := db.QueryRowContext(ctx, `
		SELECT canonical_url, domain, path, fragment FROM urls WHERE original_url = ?
	`, raw).Scan(&canonical, &domain, &path, &fragment)
	if err != nil {
		t.Fatalf("query url: %v", err)
	}
	if canonical != "https://www.example.es/servicios/fiscal.html" {
		t.Errorf("canonical_url = %q", canonical)
	}
	if domain != "www.example.es" || path != "/servicios/fiscal.html" || fragment != "intro" {
		t.Errorf("parts = %q %q %q", domain, path, fragment)
	}
}

func TestGetLastAccess_RegisteredWithoutAttempts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	urlID, err := db.InsertURL(ctx, "https://www.example.es/nuevo")
	if err != nil {
		t.Fatalf("InsertURL() error = %v", err)
	}
	last, err := db.GetLastAccess(ctx, urlID)
	if err != nil {
		t.Fatalf("GetLastAccess() error = %v", err)
	}
	if last != nil {
		t.Errorf("GetLastAccess() = %+v, want nil", last)
	}
}

func TestGetURLID_Unknown(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetURLID(context.Background(), "https://www.example.es/nunca"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetURLID() error = %v, want ErrNotFound", err)
	}
}
