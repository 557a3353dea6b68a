package form

import (
	"fmt"
	"strings"
)

// Control is a text-area-like element whose height follows its content.
type Control interface {
	SetHeight(height string)
	ScrollHeight() int
}

// AutoResize resets the control to its intrinsic height and then sets it to
// exactly the content's scroll height in pixels.
func AutoResize(c Control) {
	if c == nil {
		return
	}
	c.SetHeight("auto")
	c.SetHeight(fmt.Sprintf("%dpx", c.ScrollHeight()))
}

// Metrics approximate how text lays out in a multi-line control.
type Metrics struct {
	LineHeight int
	Padding    int
}

// DefaultMetrics match the vanilla stylesheet.
var DefaultMetrics = Metrics{LineHeight: 20, Padding: 4}

// ContentHeight returns the scroll height of text: one line minimum.
func (m Metrics) ContentHeight(text string) int {
	lines := strings.Count(text, "\n") + 1
	return lines*m.LineHeight + 2*m.Padding
}
