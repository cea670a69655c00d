package config

import (
	"errors"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"GRAM_TEST_PORT" envDefault:"123"`
}

type validatedConfig struct {
	Size int `env:"GRAM_TEST_SIZE" envDefault:"5"`
}

func (c *validatedConfig) Validate() error {
	if c.Size < 1 || c.Size > 9 {
		return errors.New("size must be between 1 and 9")
	}
	return nil
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("GRAM_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  any
		wantErr string
	}{
		{name: "valid", target: &validatedConfig{Size: 5}},
		{name: "invalid", target: &validatedConfig{Size: 12}, wantErr: "invalid config: size must be between 1 and 9"},
		{name: "no validator", target: &envTestConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.target)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseEnvDoesNotValidate(t *testing.T) {
	t.Setenv("GRAM_TEST_SIZE", "12")
	var cfg validatedConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Size != 12 {
		t.Fatalf("expected size 12, got %d", cfg.Size)
	}
}
