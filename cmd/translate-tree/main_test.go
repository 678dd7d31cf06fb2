package main

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"start:\n  message: hi", "start:\n  message: hi\n"},
		{"```yaml\nstart:\n  message: hi\n```", "start:\n  message: hi\n"},
		{"  ```\nstart: {}\n```  \n", "start: {}\n"},
		{"", "\n"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
