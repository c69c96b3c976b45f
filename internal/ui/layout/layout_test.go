package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Paper Builder", 120, 3, 100)
	for _, want := range []string{"Talent Hub", "Paper Builder", "120 pts", "3 days"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
	if !strings.Contains(RenderHeader("", 0, 1, 100), "1 day") {
		t.Errorf("single-day streak should be singular")
	}
}

func TestIsCompact(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{100, 30, false},
		{69, 30, true},
		{100, 21, true},
		{70, 22, false},
	}
	for _, tt := range tests {
		if got := IsCompact(tt.w, tt.h); got != tt.want {
			t.Errorf("IsCompact(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
