package config

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				APIBaseURL: "http://localhost:8000/api",
				IssuerName: "LinkVault",
				ExportDir:  ".",
			},
			wantErr: false,
		},
		{
			name: "missing api url",
			config: Config{
				IssuerName: "LinkVault",
				ExportDir:  ".",
			},
			wantErr: true,
		},
		{
			name: "api url without scheme",
			config: Config{
				APIBaseURL: "localhost:8000/api",
				IssuerName: "LinkVault",
				ExportDir:  ".",
			},
			wantErr: true,
		},
		{
			name: "missing issuer name",
			config: Config{
				APIBaseURL: "http://localhost:8000/api",
				ExportDir:  ".",
			},
			wantErr: true,
		},
		{
			name: "export dir does not exist",
			config: Config{
				APIBaseURL: "http://localhost:8000/api",
				IssuerName: "LinkVault",
				ExportDir:  "/nonexistent/path",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("APIBaseURL default = %q", cfg.APIBaseURL)
	}
	if cfg.SheetWorksheet != "Ledger" {
		t.Errorf("SheetWorksheet default = %q", cfg.SheetWorksheet)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LINKVAULT_API_URL", "https://vault.example.com/api")
	t.Setenv("LINKVAULT_ISSUER_NAME", "My Company")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://vault.example.com/api" {
		t.Errorf("APIBaseURL = %q, want env value", cfg.APIBaseURL)
	}
	if cfg.IssuerName != "My Company" {
		t.Errorf("IssuerName = %q, want env value", cfg.IssuerName)
	}
}

func TestGetLoggerConfig(t *testing.T) {
	cfg := Config{LogLevel: "debug", LogFormat: "json", LogOutput: "stdout"}
	lc := cfg.GetLoggerConfig()
	if lc.Level != "debug" || lc.Format != "json" || lc.Output != "stdout" {
		t.Errorf("GetLoggerConfig() = %+v, want fields carried over", lc)
	}
}
