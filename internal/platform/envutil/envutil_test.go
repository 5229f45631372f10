package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("WARDROBE_TEST_INT", " 42 ")
	t.Setenv("WARDROBE_TEST_BAD_INT", "forty")
	t.Setenv("WARDROBE_TEST_FLOAT", "0.15")
	t.Setenv("WARDROBE_TEST_BOOL", "off")
	t.Setenv("WARDROBE_TEST_SECONDS", "90")
	t.Setenv("WARDROBE_TEST_STRING", "  sqlite ")

	if got := Int("WARDROBE_TEST_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("WARDROBE_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Float("WARDROBE_TEST_FLOAT", 1); got != 0.15 {
		t.Fatalf("Float: got %v", got)
	}
	if got := Bool("WARDROBE_TEST_BOOL", true); got {
		t.Fatalf("Bool: expected false")
	}
	if got := Bool("WARDROBE_TEST_UNSET_BOOL", true); !got {
		t.Fatalf("Bool default: expected true")
	}
	if got := Seconds("WARDROBE_TEST_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: got %v", got)
	}
	if got := String("WARDROBE_TEST_STRING", "postgres"); got != "sqlite" {
		t.Fatalf("String: got %q", got)
	}
	if got := Int64("WARDROBE_TEST_UNSET_INT64", 9); got != 9 {
		t.Fatalf("Int64 default: got %d", got)
	}
}
