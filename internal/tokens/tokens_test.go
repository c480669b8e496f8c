package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/docfolio/backend/internal/models"
)

func encodeSegment(seg []byte) string {
	return base64.RawURLEncoding.EncodeToString(seg)
}

func decodeSegment(seg string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(seg)
}

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func testUser() *models.User {
	return &models.User{
		ID:    "user-123",
		Email: "test@example.com",
		Roles: []models.Role{models.RoleCoordinator, models.RoleCollaborator},
	}
}

func TestGenerateAndParse(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	claims, err := Parse(testSecret, tokenStr)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("unexpected user id: %q", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Fatalf("unexpected email: %q", claims.Email)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != models.RoleCoordinator {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestParse_Expired(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, testUser(), -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := Parse(testSecret, tokenStr); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestParse_WrongSecretFails(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := Parse("different-secret-xxxxxxxxxxxxxxxx", tokenStr); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse(testSecret, "not.a.jwt"); err == nil {
		t.Fatalf("expected parse to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestParse_AlgNoneRejected(t *testing.T) {
	payload := `{"sub":"u-none","exp":9999999999}`
	headerEnc := encodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := encodeSegment([]byte(payload))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := Parse(testSecret, tok); err == nil {
		t.Fatalf("expected parse to reject alg=none token")
	}
}

// Tampering with the payload must fail signature verification
func TestParse_TamperedPayload(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, testUser(), 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := decodeSegment(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	payloadStr := strings.Replace(string(payloadBytes), "user-123", "attacker", 1)
	parts[1] = encodeSegment([]byte(payloadStr))
	if _, err := Parse(testSecret, strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
