package module

import (
	"strings"
	"sync"
)

// LineWidth is the widest a display line gets before the last word wraps.
const LineWidth = 28

// Screen holds what the module shows: the stage counter and Simon's current
// statement, wrapped for the display.
type Screen struct {
	mu    sync.RWMutex
	stage string
	text  string
}

// ScreenState is a snapshot of a Screen.
type ScreenState struct {
	Stage string
	Text  string
	// Lines is Text wrapped at LineWidth.
	Lines []string
}

func (s *Screen) setStage(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = label
}

func (s *Screen) setText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// State returns the current screen contents.
func (s *Screen) State() ScreenState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ScreenState{
		Stage: s.stage,
		Text:  s.text,
		Lines: Wrap(s.text, LineWidth),
	}
}

// Wrap breaks text into display lines. Once a line grows past width and the
// last character is not a space, the partial word moves to a new line. A word
// longer than width with no space before it stays on its line.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	var lines []string
	var line strings.Builder
	for _, r := range text {
		line.WriteRune(r)
		current := line.String()
		if len([]rune(current)) <= width || strings.HasSuffix(current, " ") {
			continue
		}
		cut := strings.LastIndex(current, " ")
		if cut < 0 {
			continue
		}
		lines = append(lines, current[:cut])
		line.Reset()
		line.WriteString(current[cut+1:])
	}
	return append(lines, line.String())
}
