package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("app", "secret", "db.local", "3306", "keycontrol")
	for _, want := range []string{
		"app:secret@tcp(db.local:3306)/keycontrol",
		"parseTime=true",
		"charset=utf8mb4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn() = %q, missing %q", got, want)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn("app", "", "db.local", "3306", "keycontrol")
	if !strings.HasPrefix(got, "app@tcp(") {
		t.Errorf("dsn() = %q, want no password separator for an empty password", got)
	}
}
