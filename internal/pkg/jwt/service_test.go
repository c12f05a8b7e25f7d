package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestGeneratePairRoundTrip(t *testing.T) {
	svc := newTestService()
	adminID := uuid.New()

	pair, err := svc.GeneratePair(adminID, "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d", pair.ExpiresIn)
	}

	access, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if access.AdminID != adminID || access.Email != "admin@example.com" {
		t.Errorf("claims = %+v", access)
	}

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if refresh.AdminID != adminID {
		t.Errorf("refresh claims = %+v", refresh)
	}
}

func TestTokenTypeIsEnforced(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GeneratePair(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GeneratePair(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := svc.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
