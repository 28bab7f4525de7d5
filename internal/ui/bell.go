package ui

import (
	"fmt"
	"io"
	"strings"
)

// Bell is a terminal notification sender: it rings the bell and prints
// the message muted. It is used for fire-and-forget command feedback.
type Bell struct {
	w      io.Writer
	styles Styles
}

func NewBell(w io.Writer, styles Styles) *Bell {
	return &Bell{w: w, styles: styles}
}

func (b *Bell) SendMessage(text string) error {
	_, err := fmt.Fprintf(b.w, "\a%s\n", b.styles.Muted.Render(strings.TrimSpace(text)))
	return err
}
