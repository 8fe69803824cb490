package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tokenFile := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenFile, []byte("  file-token \n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "inline value", src: Source{Name: "api token", Value: " inline "}, want: "inline"},
		{name: "file wins over value", src: Source{Name: "api token", Value: "inline", File: tokenFile}, want: "file-token"},
		{name: "empty file", src: Source{Name: "api token", File: emptyFile}, wantErr: "is empty"},
		{name: "missing file", src: Source{Name: "api token", File: filepath.Join(dir, "missing")}, wantErr: "reading api token"},
		{name: "not configured", src: Source{}, wantErr: "secret is not configured"},
		{name: "optional and unset", src: Source{Name: "api token", Optional: true}, want: ""},
		{name: "optional with empty file", src: Source{Name: "api token", File: emptyFile, Optional: true}, wantErr: "is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadNotConfiguredSentinel(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key", Value: "   "})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
