package masking

import "testing"

func TestAPIKeyMasksMiddle(t *testing.T) {
	key := "eb_live_0123456789abcdef"
	masked := APIKey(key)
	if masked == key {
		t.Fatalf("expected key to be masked, got %s", masked)
	}
	if len(masked) == 0 {
		t.Fatal("expected non-empty masked key")
	}
}

func TestAPIKeyEmptyInput(t *testing.T) {
	if out := APIKey(""); out != "" {
		t.Fatalf("expected empty output for empty key, got %s", out)
	}
}
