package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./artistx.db" {
			t.Errorf("expected database path ./artistx.db, got %s", config.Database.Path)
		}

		if config.Catalog.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("unexpected api url %s", config.Catalog.APIURL)
		}

		if config.Catalog.TokenURL != "https://accounts.spotify.com/api/token" {
			t.Errorf("unexpected token url %s", config.Catalog.TokenURL)
		}

		if config.Catalog.Market != "US" {
			t.Errorf("expected market US, got %s", config.Catalog.Market)
		}

		if config.Catalog.SearchLimit != 5 {
			t.Errorf("expected search limit 5, got %d", config.Catalog.SearchLimit)
		}

		if config.Catalog.Timeout() != 15*time.Second {
			t.Errorf("expected catalog timeout 15s, got %v", config.Catalog.Timeout())
		}

		if config.Preview.Timeout() != 20*time.Second {
			t.Errorf("expected preview timeout 20s, got %v", config.Preview.Timeout())
		}

		if config.Credentials.ClientID != "" {
			t.Errorf("expected empty client id, got %s", config.Credentials.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials]
client_id = "test_client_id"
client_secret = "test_secret"

[catalog]
market = "GB"
album_limit = 20

[preview]
timeout_seconds = 5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.ClientID)
		}
		if config.Catalog.Market != "GB" {
			t.Errorf("expected market GB, got %s", config.Catalog.Market)
		}
		if config.Catalog.AlbumLimit != 20 {
			t.Errorf("expected album limit 20, got %d", config.Catalog.AlbumLimit)
		}
		if config.Catalog.SearchLimit != 5 {
			t.Errorf("expected default search limit to survive, got %d", config.Catalog.SearchLimit)
		}
		if config.Preview.Timeout() != 5*time.Second {
			t.Errorf("expected preview timeout 5s, got %v", config.Preview.Timeout())
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[catalog\nmarket ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		config.Credentials.ClientSecret = "from_file"

		env := map[string]string{EnvClientID: " env_id "}
		config.ApplyEnv(func(k string) string { return env[k] })

		if config.Credentials.ClientID != "env_id" {
			t.Errorf("expected env client id, got %q", config.Credentials.ClientID)
		}
		if config.Credentials.ClientSecret != "from_file" {
			t.Errorf("empty env value should not override file, got %q", config.Credentials.ClientSecret)
		}
	})

	t.Run("Resolve missing file uses defaults", func(t *testing.T) {
		t.Setenv(EnvClientID, "resolved_id")
		t.Setenv(EnvClientSecret, "resolved_secret")

		config, err := Resolve(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Credentials.ClientID != "resolved_id" || config.Credentials.ClientSecret != "resolved_secret" {
			t.Errorf("expected credentials from environment, got %+v", config.Credentials)
		}
	})
}

func TestCredentialsValidate(t *testing.T) {
	tt := []struct {
		name    string
		creds   CredentialsConfig
		missing []string
	}{
		{name: "complete", creds: CredentialsConfig{ClientID: "id", ClientSecret: "secret"}},
		{name: "missing id", creds: CredentialsConfig{ClientSecret: "secret"}, missing: []string{EnvClientID}},
		{name: "missing secret", creds: CredentialsConfig{ClientID: "id"}, missing: []string{EnvClientSecret}},
		{name: "blank both", creds: CredentialsConfig{ClientID: " ", ClientSecret: ""}, missing: []string{EnvClientID, EnvClientSecret}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.creds.Validate()
			if len(tc.missing) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if len(cfgErr.Missing) != len(tc.missing) {
				t.Fatalf("expected missing %v, got %v", tc.missing, cfgErr.Missing)
			}
			for i := range tc.missing {
				if cfgErr.Missing[i] != tc.missing[i] {
					t.Errorf("missing[%d] = %s, want %s", i, cfgErr.Missing[i], tc.missing[i])
				}
			}
			if !errors.Is(err, ErrMissingCredentials) {
				t.Error("ConfigError should unwrap to ErrMissingCredentials")
			}
		})
	}
}
