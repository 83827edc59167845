package rule

import (
	"errors"
	"strings"
)

// ErrUnknownButton indicates a remote-control token that names no button.
var ErrUnknownButton = errors.New("unknown button")

// Button identifies one of the four module buttons.
type Button int

const (
	ButtonNone Button = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// Buttons lists the pressable buttons in display order.
var Buttons = []Button{TopLeft, TopRight, BottomLeft, BottomRight}

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Token returns the short remote-control token for the button.
func (b Button) Token() string {
	switch b {
	case TopLeft:
		return "tl"
	case TopRight:
		return "tr"
	case BottomLeft:
		return "bl"
	case BottomRight:
		return "br"
	default:
		return ""
	}
}

// Valid reports whether b is one of the four pressable buttons.
func (b Button) Valid() bool {
	return b >= TopLeft && b <= BottomRight
}

// ParseButton maps a tl|tr|bl|br token to its button.
func ParseButton(token string) (Button, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, b := range Buttons {
		if b.Token() == token {
			return b, nil
		}
	}
	return ButtonNone, ErrUnknownButton
}
