package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestRootCommands(t *testing.T) {
	root := rootCmd()
	want := []string{"serve", "migrate", "load-ingredients", "load-tags", "token"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == nil || cmd.Name() != name {
			t.Fatalf("expected subcommand %q, got %v (err=%v)", name, cmd, err)
		}
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("LOG_MODE", "test")
	t.Setenv("CONFIG_FILE", "")

	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", "7f8c3a52-6d1e-4a54-9a0c-2c1b7d1e9f00", "--ttl", "1h"})
	if err := root.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}
	raw := strings.TrimSpace(out.String())
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte("cli-secret"), nil
	}); err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
}

func TestTokenCommandRejectsBadUser(t *testing.T) {
	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token", "--user", "not-a-uuid"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for invalid user id")
	}
}

func TestLoadIngredientsMissingFile(t *testing.T) {
	root := rootCmd()
	root.SetArgs([]string{"load-ingredients", "--file", t.TempDir() + "/missing.json"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for missing fixture")
	}
}
