package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	redactionOn()
	cases := []struct {
		name string
		key  string
		val  interface{}
		want func(interface{}) bool
	}{
		{
			name: "password_redacted",
			key:  "password",
			val:  "hunter2",
			want: func(v interface{}) bool { return v == "[REDACTED]" },
		},
		{
			name: "access_token_redacted",
			key:  "access_token",
			val:  "abc",
			want: func(v interface{}) bool { return v == "[REDACTED]" },
		},
		{
			name: "user_id_hashed",
			key:  "user_id",
			val:  "7f1b7c1e-0000-0000-0000-000000000000",
			want: func(v interface{}) bool {
				s, ok := v.(string)
				return ok && strings.HasPrefix(s, "hash:") && len(s) == len("hash:")+12
			},
		},
		{
			name: "category_untouched",
			key:  "category",
			val:  "shoes",
			want: func(v interface{}) bool { return v == "shoes" },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeValue(tc.key, tc.val)
			if !redactionEnabled {
				t.Skip("redaction disabled via LOG_REDACTION_ENABLED")
			}
			if !tc.want(got) {
				t.Fatalf("sanitizeValue(%q, %v) = %v", tc.key, tc.val, got)
			}
		})
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"category", "top", "orphan"})
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(out), out)
	}
	if out[2] != "orphan" {
		t.Fatalf("expected dangling key preserved, got %v", out[2])
	}
}
