// ABOUTME: Glyphs for session state with Nerd Font and plain Unicode variants
// ABOUTME: AUTHCTL_NERD_FONTS forces the choice; otherwise the terminal is sniffed

package icons

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// terminals known to ship with or commonly use a patched font
var nerdFontTerminals = []string{"iTerm.app", "WezTerm", "ghostty", "kitty", "alacritty"}

var nerdFonts = sync.OnceValue(func() bool {
	return detect(os.Getenv)
})

// detect decides from the environment whether Nerd Font glyphs will render
func detect(getenv func(string) string) bool {
	if v := getenv("AUTHCTL_NERD_FONTS"); v != "" {
		on, err := strconv.ParseBool(v)
		return err == nil && on
	}

	program := getenv("TERM_PROGRAM")
	term := getenv("TERM")
	for _, name := range nerdFontTerminals {
		if strings.Contains(program, name) || strings.Contains(term, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// Icon is a glyph with a fallback for terminals without Nerd Fonts
type Icon struct {
	Nerd  string
	Plain string
}

func (i Icon) String() string {
	if nerdFonts() {
		return i.Nerd
	}
	return i.Plain
}

var (
	User   = Icon{"\U000f0004", "☺"} // nf-md-account
	Lock   = Icon{"\U000f033e", "▣"} // nf-md-lock
	Unlock = Icon{"\U000f033f", "□"} // nf-md-lock_open
	Key    = Icon{"\U000f0306", "⚿"} // nf-md-key

	CheckOK  = Icon{"", "✓"} // nf-fa-check_circle
	Warning  = Icon{"", "⚠"} // nf-fa-warning
	Critical = Icon{"", "✗"} // nf-fa-times_circle
)
