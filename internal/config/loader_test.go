package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/skillport/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
				convey.So(cfg.DefaultMetric, convey.ShouldEqual, "score")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SKILLPORT_ADDR", ":8080")
			_ = os.Setenv("SKILLPORT_STORE_DRIVER", "sqlite")
			_ = os.Setenv("SKILLPORT_STORE_DSN", "skillport.db")
			_ = os.Setenv("SKILLPORT_MAX_LEADERBOARD_LIMIT", "25")
			_ = os.Setenv("SKILLPORT_DEFAULT_METRIC", "accuracy")
			_ = os.Setenv("SKILLPORT_IDEMPOTENCY_SIZE", "500")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.StoreDSN, convey.ShouldEqual, "skillport.db")
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 25)
				convey.So(cfg.IdempotencySize, convey.ShouldEqual, 500)
				convey.So(string(cfg.Metric()), convey.ShouldEqual, "accuracy")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
# owner of the portfolio
addr: ":9090"
owner_id: "u-1"
owner_name: "Ada Lovelace"
certificate_base_url: "https://certs.example.org"
read_timeout_ms: 2500
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLPORT_CONFIG", tmpFile)
			_ = os.Setenv("SKILLPORT_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.OwnerID, convey.ShouldEqual, "u-1")
				convey.So(cfg.OwnerName, convey.ShouldEqual, "Ada Lovelace")
				convey.So(cfg.CertificateBaseURL, convey.ShouldEqual, "https://certs.example.org")
				convey.So(cfg.ReadTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.WriteTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When a .env file is present", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, ".env")
			content := "SKILLPORT_OWNER_NAME=Grace Hopper\nSKILLPORT_ADDR=:7070\n"
			convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)

			_ = os.Setenv("SKILLPORT_ENV_FILE", path)
			_ = os.Setenv("SKILLPORT_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fills unset variables without overriding the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OwnerName, convey.ShouldEqual, "Grace Hopper")
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLPORT_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SKILLPORT_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SKILLPORT_MAX_LEADERBOARD_LIMIT", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the loaded values do not validate", func() {
			_ = os.Setenv("SKILLPORT_STORE_DRIVER", "postgres")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "store_dsn")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SKILLPORT_CONFIG",
		"SKILLPORT_ENV_FILE",
		"SKILLPORT_ADDR",
		"SKILLPORT_STORE_DRIVER",
		"SKILLPORT_STORE_DSN",
		"SKILLPORT_MAX_LEADERBOARD_LIMIT",
		"SKILLPORT_DEFAULT_METRIC",
		"SKILLPORT_IDEMPOTENCY_SIZE",
		"SKILLPORT_OWNER_NAME",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "skillport-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
