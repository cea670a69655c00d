package cmd

import (
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
)

type testConfig struct {
	Addr string `env:"GRAM_CMD_TEST_ADDR" envDefault:"localhost:8090"`
	Size int    `env:"GRAM_CMD_TEST_SIZE" envDefault:"9"`
}

func (c *testConfig) Validate() error {
	if c.Size < 1 || c.Size > 9 {
		return errors.New("size out of range")
	}
	return nil
}

func bindTestFlags(fs *flag.FlagSet, cfg *testConfig) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "board size")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    testConfig
		wantErr string
	}{
		{name: "defaults", want: testConfig{Addr: "localhost:8090", Size: 9}},
		{name: "env", env: map[string]string{"GRAM_CMD_TEST_ADDR": "env:1"}, want: testConfig{Addr: "env:1", Size: 9}},
		{name: "flag overrides env", env: map[string]string{"GRAM_CMD_TEST_ADDR": "env:1"}, args: []string{"-addr", "flag:2"}, want: testConfig{Addr: "flag:2", Size: 9}},
		{name: "flag fixes env", env: map[string]string{"GRAM_CMD_TEST_SIZE": "12"}, args: []string{"-size", "3"}, want: testConfig{Addr: "localhost:8090", Size: 3}},
		{name: "validated after flags", args: []string{"-size", "0"}, wantErr: "invalid config: size out of range"},
		{name: "bad env", env: map[string]string{"GRAM_CMD_TEST_SIZE": "many"}, wantErr: "parse env:"},
		{name: "unknown flag", args: []string{"-color", "red"}, wantErr: "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(&strings.Builder{})

			var cfg testConfig
			err := Load(&cfg, fs, tt.args, bindTestFlags)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg != tt.want {
				t.Fatalf("Load() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestLoadRejectsMissingInputs(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := Load[testConfig](nil, fs, nil, nil); err == nil {
		t.Fatal("expected missing config error")
	}
	if err := Load(&testConfig{}, nil, nil, nil); err == nil {
		t.Fatal("expected missing flag set error")
	}
}

func TestRunWithTelemetry(t *testing.T) {
	t.Setenv("GRAM_OTEL_ENDPOINT", "")

	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceBoard, nil); err == nil {
		t.Fatal("expected missing run function error")
	}

	runErr := errors.New("stopped")
	var ran bool
	err := RunWithTelemetry(context.Background(), ServiceMCP, func(context.Context) error {
		ran = true
		return runErr
	})
	if !ran || !errors.Is(err, runErr) {
		t.Fatalf("RunWithTelemetry() = %v, ran %v; want run error", err, ran)
	}
}
