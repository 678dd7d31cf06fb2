package config

import (
	"testing"
	"time"

	"grantrates-backend/models"
	"grantrates-backend/storage"

	"github.com/google/go-cmp/cmp"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "CONTENT_SOURCE", "CONTENT_LOCAL_PATH",
	"AWS_S3_BUCKET", "AWS_REGION", "AWS_S3_PREFIX", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	"DATASET_SOURCE", "DATABASE_URL", "CHAT_TYPING_DELAY", "CHAT_SESSION_TTL",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "DEFAULT_LANGUAGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.Storage.Type != storage.StorageTypeEmbedded || cfg.DatasetSource != DatasetSourceContent {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ChatTypingDelay != 500*time.Millisecond || cfg.ChatSessionTTL != 30*time.Minute {
		t.Errorf("chat timings = %v, %v", cfg.ChatTypingDelay, cfg.ChatSessionTTL)
	}
	if cfg.DefaultLanguage != models.LanguageEnglish {
		t.Errorf("DefaultLanguage = %s", cfg.DefaultLanguage)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.CORSAllowedOrigins); diff != "" {
		t.Errorf("CORSAllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CONTENT_SOURCE", "S3")
	t.Setenv("AWS_S3_BUCKET", "grant-content")
	t.Setenv("AWS_S3_PREFIX", "v2")
	t.Setenv("DATASET_SOURCE", "postgres")
	t.Setenv("CHAT_TYPING_DELAY", "0s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DEFAULT_LANGUAGE", "es-MX")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantStorage := storage.StorageConfig{
		Type:      storage.StorageTypeS3,
		LocalPath: "./content",
		S3Bucket:  "grant-content",
		S3Region:  "us-east-1",
		S3Prefix:  "v2",
	}
	if diff := cmp.Diff(wantStorage, cfg.Storage); diff != "" {
		t.Errorf("Storage mismatch (-want +got):\n%s", diff)
	}
	if cfg.Port != "9090" || cfg.DatasetSource != DatasetSourcePostgres {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ChatTypingDelay != 0 || cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Errorf("delay = %v rps = %v burst = %d", cfg.ChatTypingDelay, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins); diff != "" {
		t.Errorf("CORSAllowedOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.DefaultLanguage != models.LanguageSpanish {
		t.Errorf("DefaultLanguage = %s", cfg.DefaultLanguage)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_SESSION_TTL", "forever")
	t.Setenv("CHAT_TYPING_DELAY", "-1s")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChatSessionTTL != 30*time.Minute || cfg.ChatTypingDelay != 500*time.Millisecond || cfg.RateLimitBurst != 20 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsUnknownEnums(t *testing.T) {
	tests := map[string]string{
		"CONTENT_SOURCE":   "ftp",
		"DATASET_SOURCE":   "mongo",
		"DEFAULT_LANGUAGE": "fr",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%s", key, value)
			}
		})
	}
}
