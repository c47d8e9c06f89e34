package processor

import "testing"

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", "${HOME}"},
		{"home-relative path", "~/Desktop/book.m4b", "${HOME}/Desktop/book.m4b"},
		{"absolute path untouched", "/data/book.m4b", "/data/book.m4b"},
		{"relative path untouched", "books/book.m4b", "books/book.m4b"},
		{"tilde user form untouched", "~alice/book.m4b", "~alice/book.m4b"},
		{"mid-path tilde untouched", "/data/~archive/book.m4b", "/data/~archive/book.m4b"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuotePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/audio/book.wav", "/audio/book.wav"},
		{"/audio/My Book.wav", `"/audio/My Book.wav"`},
		{"/audio/tab\tname.wav", "\"/audio/tab\tname.wav\""},
		{"${HOME}/book.wav", "${HOME}/book.wav"},
	}

	for _, tt := range tests {
		if got := quotePath(tt.in); got != tt.want {
			t.Errorf("quotePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
