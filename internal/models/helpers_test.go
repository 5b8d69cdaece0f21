package models

import "testing"

func TestContentHash(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"simple", "hello", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentHash(tt.in)
			if got != tt.want {
				t.Errorf("ContentHash(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	// Deterministic and collision-free for distinct inputs.
	if ContentHash("a") == ContentHash("b") {
		t.Error("distinct inputs produced identical digests")
	}
	if ContentHash("a") != ContentHash("a") {
		t.Error("repeated hashing of the same input differed")
	}
}

func TestPageKey(t *testing.T) {
	if got := PageKey(20564, "week-3-overview"); got != "20564:week-3-overview" {
		t.Errorf("PageKey = %q", got)
	}
}

func TestParseCanvasTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"rfc3339 z", "2025-07-28T04:11:02Z", false},
		{"rfc3339 offset", "2025-07-28T14:11:02+10:00", false},
		{"date only", "2025-07-28", false},
		{"garbage", "next tuesday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCanvasTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCanvasTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
