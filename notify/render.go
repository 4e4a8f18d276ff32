package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// NewTerminalRenderer prints visible notifications to w, one per line.
// Colors are used only when w is a terminal.
func NewTerminalRenderer(w io.Writer) Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return func(n Notification) {
		if !n.Visible || n.Message == "" {
			return
		}
		symbol, code := decoration(n.Kind)
		if color {
			fmt.Fprintf(w, "%s%s %s%s\n", code, symbol, n.Message, colorReset)
			return
		}
		fmt.Fprintf(w, "%s %s\n", symbol, n.Message)
	}
}

func decoration(kind Kind) (string, string) {
	switch kind {
	case KindError:
		return "✗", colorRed
	case KindWarning:
		return "!", colorYellow
	case KindSuccess:
		return "✓", colorGreen
	default:
		return "•", colorCyan
	}
}
