package config

import "testing"

func TestEnvStringUnsetReturnsNil(t *testing.T) {
	t.Setenv(EnvRoot, "")
	if got := EnvString(EnvRoot); got != nil {
		t.Fatalf("expected nil for unset env, got %v", *got)
	}
}

func TestEnvStringSet(t *testing.T) {
	t.Setenv(EnvRoot, "Corpus")
	got := EnvString(EnvRoot)
	if got == nil || *got != "Corpus" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv(EnvThreshold, "2500")
	got, err := EnvInt(EnvThreshold)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got == nil || *got != 2500 {
		t.Fatalf("unexpected value: %v", got)
	}

	t.Setenv(EnvThreshold, "not-a-number")
	if _, err := EnvInt(EnvThreshold); err == nil {
		t.Fatalf("expected error for non-numeric value")
	}

	t.Setenv(EnvThreshold, "")
	got, err = EnvInt(EnvThreshold)
	if err != nil || got != nil {
		t.Fatalf("expected nil for unset env, got %v, %v", got, err)
	}
}
