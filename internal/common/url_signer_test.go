package common

import (
	"context"
	"testing"
	"time"
)

func TestURLSigner_RoundTrip(t *testing.T) {
	signer := NewURLSignerService([]byte("test-secret"), nil)

	token, err := signer.SignDownload("user-1", "/exports/fleet-export-x.zip", 5*time.Minute)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	download, err := signer.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if download.UserID != "user-1" {
		t.Errorf("Expected user-1, got %q", download.UserID)
	}
	if download.ArchivePath != "/exports/fleet-export-x.zip" {
		t.Errorf("Expected archive path round trip, got %q", download.ArchivePath)
	}
	if download.TokenID == "" {
		t.Error("Expected a token id claim")
	}
}

func TestURLSigner_WrongKeyRejected(t *testing.T) {
	signer := NewURLSignerService([]byte("key-a"), nil)
	other := NewURLSignerService([]byte("key-b"), nil)

	token, err := signer.SignDownload("user-1", "/exports/a.zip", 5*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.ValidateToken(context.Background(), token); err == nil {
		t.Error("Expected validation failure with wrong key")
	}
}

func TestURLSigner_ExpiredRejected(t *testing.T) {
	signer := NewURLSignerService([]byte("test-secret"), nil)

	token, err := signer.SignDownload("user-1", "/exports/a.zip", -1*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := signer.ValidateToken(context.Background(), token); err == nil {
		t.Error("Expected expired token rejected")
	}
}

func TestURLSigner_GarbageRejected(t *testing.T) {
	signer := NewURLSignerService([]byte("test-secret"), nil)
	if _, err := signer.ValidateToken(context.Background(), "not.a.token"); err == nil {
		t.Error("Expected garbage token rejected")
	}
}
