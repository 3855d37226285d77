package config

import (
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_TIMEZONE", "Asia/Karachi")
	t.Setenv("DB_NAME", "clinic")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("JWT_REFRESH_EXPIRY", "not-a-duration")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want 9090", cfg.App.Port)
	}
	if cfg.DB.Name != "clinic" || !cfg.DB.AutoMigrate {
		t.Errorf("DB = %+v, want name clinic with auto migrate", cfg.DB)
	}
	if cfg.DB.Port != "5432" {
		t.Errorf("DB.Port = %q, want default 5432", cfg.DB.Port)
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Errorf("AccessExpiry = %v, want 30m", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.RefreshExpiry != 7*24*time.Hour {
		t.Errorf("RefreshExpiry = %v, want fallback of 7 days", cfg.JWT.RefreshExpiry)
	}
	if cfg.Location().String() != "Asia/Karachi" {
		t.Errorf("Location() = %v, want Asia/Karachi", cfg.Location())
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want []string
	}{
		{name: "default allows any origin", want: []string{"*"}},
		{name: "single origin", env: "https://clinic.example", want: []string{"https://clinic.example"}},
		{name: "comma separated with blanks", env: " https://a.example, ,https://b.example ", want: []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("CORS_ALLOWED_ORIGINS", tt.env)
			}

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, tt.want) {
				t.Errorf("AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, tt.want)
			}
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{App: AppConfig{Timezone: "Nowhere/Invalid"}}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}
