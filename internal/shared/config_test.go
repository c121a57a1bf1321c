package shared

import (
	"errors"
	"testing"

	"github.com/desertthunder/umx/internal/models"
)

func clearMigrationEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CLERK_SECRET_KEY", "IMPORT_TO_DEV_INSTANCE",
		"DELAY_MS", "RETRY_DELAY_MS", "OFFSET", "PASSWORD_HASHER",
	} {
		t.Setenv(name, "")
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Migration.DelayMS != 1000 {
			t.Errorf("expected default delay 1000ms, got %d", config.Migration.DelayMS)
		}
		if config.Migration.RetryDelayMS != 10000 {
			t.Errorf("expected default retry delay 10000ms, got %d", config.Migration.RetryDelayMS)
		}
		if config.Migration.Offset != 0 {
			t.Errorf("expected default offset 0, got %d", config.Migration.Offset)
		}
		if config.Migration.Hasher != models.HasherBcrypt {
			t.Errorf("expected default hasher bcrypt, got %s", config.Migration.Hasher)
		}
		if config.Database.Path != "umx.db" {
			t.Errorf("expected default database path umx.db, got %s", config.Database.Path)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Run("Defaults Survive Empty Environment", func(t *testing.T) {
			clearMigrationEnv(t)
			config := DefaultConfig()

			if err := config.ApplyEnv(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Migration.DelayMS != 1000 || config.Migration.RetryDelayMS != 10000 {
				t.Errorf("expected defaults untouched, got %+v", config.Migration)
			}
			if config.Migration.ImportToDev {
				t.Error("expected dev opt-in to default to false")
			}
		})

		t.Run("Environment Wins Over Defaults", func(t *testing.T) {
			clearMigrationEnv(t)
			t.Setenv("CLERK_SECRET_KEY", "sk_test_abc")
			t.Setenv("IMPORT_TO_DEV_INSTANCE", "true")
			t.Setenv("DELAY_MS", "250")
			t.Setenv("RETRY_DELAY_MS", "5000")
			t.Setenv("OFFSET", "42")
			t.Setenv("PASSWORD_HASHER", "md5")

			config := DefaultConfig()
			if err := config.ApplyEnv(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			m := config.Migration
			if m.SecretKey != "sk_test_abc" || !m.ImportToDev {
				t.Errorf("expected credentials applied, got %+v", m)
			}
			if m.DelayMS != 250 || m.RetryDelayMS != 5000 || m.Offset != 42 {
				t.Errorf("expected pacing overrides applied, got %+v", m)
			}
			if m.Hasher != models.HasherMD5 {
				t.Errorf("expected hasher md5, got %s", m.Hasher)
			}
		})

		t.Run("Opt-In Requires Exact True", func(t *testing.T) {
			clearMigrationEnv(t)
			t.Setenv("IMPORT_TO_DEV_INSTANCE", "TRUE")

			config := DefaultConfig()
			if err := config.ApplyEnv(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Migration.ImportToDev {
				t.Error("expected only the literal 'true' to opt in")
			}
		})

		t.Run("Rejects Non-Integer Pacing", func(t *testing.T) {
			clearMigrationEnv(t)
			t.Setenv("DELAY_MS", "soon")

			config := DefaultConfig()
			if err := config.ApplyEnv(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("Rejects Unknown Hasher", func(t *testing.T) {
			clearMigrationEnv(t)
			t.Setenv("PASSWORD_HASHER", "rot13")

			config := DefaultConfig()
			if err := config.ApplyEnv(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("Rejects Negative Offset", func(t *testing.T) {
			clearMigrationEnv(t)
			t.Setenv("OFFSET", "-1")

			config := DefaultConfig()
			if err := config.ApplyEnv(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Delay Accessors", func(t *testing.T) {
		m := MigrationConfig{DelayMS: 1000, RetryDelayMS: 10000}

		if m.Delay().Milliseconds() != 1000 {
			t.Errorf("expected 1000ms delay, got %v", m.Delay())
		}
		if m.RetryDelay().Seconds() != 10 {
			t.Errorf("expected 10s retry delay, got %v", m.RetryDelay())
		}
	})
}

func TestIsProductionKey(t *testing.T) {
	tc := []struct {
		key  string
		want bool
	}{
		{"sk_live_abc123", true},
		{"sk_test_abc123", false},
		{"pk_live_abc123", true},
		{"sk_dev_abc123", false},
		{"malformed", false},
		{"", false},
	}

	for _, tt := range tc {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsProductionKey(tt.key); got != tt.want {
				t.Errorf("IsProductionKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	t.Run("Migration", func(t *testing.T) {
		t.Run("Missing Credential", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.GuardMigration(); !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Dev Key Without Opt-In", func(t *testing.T) {
			config := DefaultConfig()
			config.Migration.SecretKey = "sk_test_abc"

			if err := config.GuardMigration(); !errors.Is(err, ErrDevInstanceGuard) {
				t.Errorf("expected ErrDevInstanceGuard, got %v", err)
			}
		})

		t.Run("Dev Key With Opt-In", func(t *testing.T) {
			config := DefaultConfig()
			config.Migration.SecretKey = "sk_test_abc"
			config.Migration.ImportToDev = true

			if err := config.GuardMigration(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Production Key", func(t *testing.T) {
			config := DefaultConfig()
			config.Migration.SecretKey = "sk_live_abc"

			if err := config.GuardMigration(); err != nil {
				t.Errorf("expected production migration to pass the guard, got %v", err)
			}
		})
	})

	t.Run("Cleanup", func(t *testing.T) {
		t.Run("Missing Credential", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.GuardCleanup(); !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Production Key Always Refused", func(t *testing.T) {
			config := DefaultConfig()
			config.Migration.SecretKey = "sk_live_abc"
			config.Migration.ImportToDev = true

			if err := config.GuardCleanup(); !errors.Is(err, ErrProductionKey) {
				t.Errorf("expected ErrProductionKey, got %v", err)
			}
		})

		t.Run("Dev Key Allowed", func(t *testing.T) {
			config := DefaultConfig()
			config.Migration.SecretKey = "sk_test_abc"

			if err := config.GuardCleanup(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})
}
