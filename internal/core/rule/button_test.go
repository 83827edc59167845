package rule

import (
	"errors"
	"testing"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		token string
		want  Button
	}{
		{"tl", TopLeft},
		{"TR", TopRight},
		{" bl ", BottomLeft},
		{"br", BottomRight},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseButton(tt.token)
			if err != nil {
				t.Fatalf("ParseButton(%q) error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Fatalf("ParseButton(%q) = %v, want %v", tt.token, got, tt.want)
			}
			if got.Token() != tt.want.Token() {
				t.Fatalf("token = %q, want %q", got.Token(), tt.want.Token())
			}
		})
	}
}

func TestParseButtonRejectsUnknownToken(t *testing.T) {
	for _, token := range []string{"", "top-left", "tt", "press tl"} {
		if _, err := ParseButton(token); !errors.Is(err, ErrUnknownButton) {
			t.Fatalf("ParseButton(%q) error = %v, want ErrUnknownButton", token, err)
		}
	}
}

func TestButtonString(t *testing.T) {
	want := []string{"top-left", "top-right", "bottom-left", "bottom-right"}
	for i, b := range Buttons {
		if b.String() != want[i] {
			t.Errorf("Buttons[%d].String() = %q, want %q", i, b.String(), want[i])
		}
		if !b.Valid() {
			t.Errorf("Buttons[%d] should be valid", i)
		}
	}
	if ButtonNone.Valid() {
		t.Fatal("ButtonNone should not be valid")
	}
}
