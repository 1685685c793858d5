package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact width", "exactly10!", 10, "exactly10!"},
		{"cut", "a long description here", 10, "a long ..."},
		{"multibyte runes", "ééééééééééé", 10, "ééééééé..."},
		{"width too narrow to ellipsize", "anything", 3, "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
