package configs

import "testing"

func setRequiredStorageEnv(t *testing.T) {
	t.Helper()

	t.Setenv("S3_BUCKET_NAME", "instavista-media")
	t.Setenv("S3_ENDPOINT", "https://storage.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_URL", "")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("S3_PUBLIC_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 6500 {
		t.Errorf("Port = %d, want 6500", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "instavista" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.S3PublicBaseURL != "https://storage.example.com/instavista-media" {
		t.Errorf("S3PublicBaseURL = %q", cfg.S3PublicBaseURL)
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected missing JWT_SECRET to fail in production")
	}
}

func TestLoadConfigRequiresStorage(t *testing.T) {
	setRequiredStorageEnv(t)
	t.Setenv("S3_BUCKET_NAME", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected missing S3_BUCKET_NAME to fail")
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	setRequiredStorageEnv(t)

	t.Setenv("PORT", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected non-numeric PORT to fail")
	}

	t.Setenv("PORT", "80")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected privileged PORT to fail")
	}
}
