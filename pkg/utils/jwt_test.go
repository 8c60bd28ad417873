package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTripCarriesOutlet(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	sub := TokenSubject{
		UserID:      uuid.New(),
		CompanyID:   uuid.New(),
		OutletID:    uuid.New(),
		Email:       "cashier@example.com",
		Permissions: []string{"manage-invoices"},
	}

	token, err := m.GenerateAccessToken(sub)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != sub.UserID || claims.CompanyID != sub.CompanyID || claims.OutletID != sub.OutletID {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken(TokenSubject{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Errorf("expected validation failure with a different secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken(TokenSubject{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}
