package s3

import "testing"

func TestIsObjectKey(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"gallery/0192f0c2.jpg", true},
		{"living-room.webp", true},
		{"https://cdn.example.com/a.jpg", false},
		{"http://example.com/a.jpg", false},
		{"/static/hero.jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsObjectKey(tt.ref); got != tt.want {
			t.Errorf("IsObjectKey(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
