package utils

import (
	"testing"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func TestAccountTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{
		BaseModel:    models.BaseModel{ID: "user-1"},
		Email:        "doctor@hospital.kerala.gov.in",
		Name:         "Dr. Arun Kumar",
		Role:         models.RoleDoctor,
		HospitalName: "General Hospital Ernakulam",
		HospitalID:   "GHE001",
	}

	token, err := GenerateAccountToken(user, cfg)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateAccountToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Role != models.RoleDoctor {
		t.Fatalf("expected doctor role, got %q", claims.Role)
	}
	if claims.HospitalName != user.HospitalName || claims.HospitalID != user.HospitalID {
		t.Fatalf("hospital details not carried: %+v", claims)
	}
}

func TestWorkerTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	worker := &models.Worker{
		BaseModel: models.BaseModel{ID: "worker-1"},
		UniqueID:  "MHB-2024-001",
		Name:      "Ramesh Kumar",
	}

	token, err := GenerateWorkerToken(worker, cfg)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateWorkerToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.WorkerID != "worker-1" || claims.UniqueID != "MHB-2024-001" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TokenTypeWorker {
		t.Fatalf("expected worker token type, got %q", claims.TokenType)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	cfg := testConfig()

	accountToken, err := GenerateAccountToken(&models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "doctor@hospital.kerala.gov.in",
		Role:      models.RoleDoctor,
	}, cfg)
	if err != nil {
		t.Fatalf("failed to generate account token: %v", err)
	}

	workerToken, err := GenerateWorkerToken(&models.Worker{
		BaseModel: models.BaseModel{ID: "worker-1"},
		UniqueID:  "MHB-2024-001",
	}, cfg)
	if err != nil {
		t.Fatalf("failed to generate worker token: %v", err)
	}

	if _, err := ValidateWorkerToken(accountToken, cfg.JWTSecret); err == nil {
		t.Fatal("account token must not pass worker validation")
	}
	if _, err := ValidateAccountToken(workerToken, cfg.JWTSecret); err == nil {
		t.Fatal("worker token must not pass account validation")
	}
}

func TestValidateAccountToken_WrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccountToken(&models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Role:      models.RoleGovernment,
	}, cfg)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateAccountToken(token, "other-secret"); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestValidateAccountToken_Garbage(t *testing.T) {
	if _, err := ValidateAccountToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("malformed token must not validate")
	}
}
