package validate

import "testing"

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/abcdEFGH_-1", true},
		{"https://youtube.com/live/abcdEFGH_-1", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", true},

		{"", false},
		{"not a url", false},
		{"https://youtu.be/short", false},
		{"https://youtu.be/dQw4w9WgXcQX", false},
		{"https://vimeo.com/123456789", false},
		{"https://www.youtube.com/playlist?list=PL123", false},
		{"ftp://youtu.be/dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXc!", false},
	}

	for _, test := range tests {
		if got := IsSupportedURL(test.url); got != test.expected {
			t.Errorf("IsSupportedURL(%q) = %v, expected %v", test.url, got, test.expected)
		}
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abcdEFGH_-1", "abcdEFGH_-1"},
		{"https://example.com", ""},
	}

	for _, test := range tests {
		if got := VideoID(test.url); got != test.expected {
			t.Errorf("VideoID(%q) = %q, expected %q", test.url, got, test.expected)
		}
	}
}
