package pretty

import (
	"fmt"

	"github.com/fatih/color"
)

// palette renders the parts of a line. Every func is fmt.Sprint-like.
type palette struct {
	kind    func(a ...any) string
	name    func(a ...any) string
	value   func(a ...any) string
	summary func(a ...any) string
	brace   func(a ...any) string
}

func newPalette(enabled bool) *palette {
	if !enabled {
		plain := fmt.Sprint
		return &palette{kind: plain, name: plain, value: plain, summary: plain, brace: plain}
	}
	mk := func(c *color.Color) func(a ...any) string {
		// Callers ask for colour explicitly; do not second-guess them
		// with the terminal check fatih/color performs on stdout.
		c.EnableColor()
		return c.SprintFunc()
	}
	return &palette{
		kind:    mk(color.RGB(74, 92, 138)),
		name:    mk(color.RGB(196, 96, 16)),
		value:   mk(color.RGB(8, 196, 16)),
		summary: mk(color.New(color.FgHiBlack)),
		brace:   mk(color.RGB(255, 0, 196)),
	}
}
