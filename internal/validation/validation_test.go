package validation

import (
	"strings"
	"testing"
	"time"
)

type roomPayload struct {
	Name    string `json:"name" validate:"required,min=3,max=255"`
	KeyName string `json:"key_name" validate:"required,min=3,max=255"`
}

type roomPartialPayload struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=255"`
	KeyName *string `json:"key_name" validate:"omitempty,min=3,max=255"`
}

func TestFieldsAggregatesAllErrors(t *testing.T) {
	v := New()
	err := v.Struct(&roomPayload{})
	if err == nil {
		t.Fatal("empty payload should fail validation")
	}
	fields := Fields(err)
	if len(fields) != 2 {
		t.Fatalf("Fields() = %v, want both fields reported", fields)
	}
	if msg, ok := fields["name"]; !ok || !strings.Contains(msg, "required") {
		t.Errorf("fields[name] = %q, want a required message keyed by json tag", msg)
	}
	if _, ok := fields["key_name"]; !ok {
		t.Errorf("fields missing key_name entry: %v", fields)
	}
}

func TestFieldsLengthMessages(t *testing.T) {
	v := New()
	err := v.Struct(&roomPayload{Name: "ab", KeyName: strings.Repeat("x", 300)})
	if err == nil {
		t.Fatal("out-of-bounds lengths should fail validation")
	}
	fields := Fields(err)
	if msg := fields["name"]; !strings.Contains(msg, "at least 3") {
		t.Errorf("fields[name] = %q, want min-length message", msg)
	}
	if msg := fields["key_name"]; !strings.Contains(msg, "at most 255") {
		t.Errorf("fields[key_name] = %q, want max-length message", msg)
	}
}

func TestPartialValidationSkipsAbsentFields(t *testing.T) {
	v := New()
	if err := v.Struct(&roomPartialPayload{}); err != nil {
		t.Errorf("absent fields should not be validated, got %v", err)
	}
	short := "ab"
	err := v.Struct(&roomPartialPayload{Name: &short})
	if err == nil {
		t.Fatal("supplied short name should fail validation")
	}
	fields := Fields(err)
	if _, ok := fields["name"]; !ok {
		t.Errorf("fields = %v, want name reported", fields)
	}
	if _, ok := fields["key_name"]; ok {
		t.Errorf("fields = %v, key_name was not supplied and must not be reported", fields)
	}
}

func TestFieldsNonValidationError(t *testing.T) {
	v := New()
	// Validating a non-struct is a usage error, not a field failure.
	err := v.Struct("not a struct")
	fields := Fields(err)
	if _, ok := fields["_"]; !ok {
		t.Errorf("fields = %v, want fallback _ entry", fields)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-08-17T14:00:00Z", time.Date(2025, 8, 17, 14, 0, 0, 0, time.UTC)},
		{"2025-08-17T14:00:00", time.Date(2025, 8, 17, 14, 0, 0, 0, time.UTC)},
		{"2025-08-17T14:00", time.Date(2025, 8, 17, 14, 0, 0, 0, time.UTC)},
		{"2025-08-17", time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"  2025-08-17T14:00:00  ", time.Date(2025, 8, 17, 14, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) returned error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "17/08/2025", "2025-13-40T99:99"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", in)
		}
	}
}
