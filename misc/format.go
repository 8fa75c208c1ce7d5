package misc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount renders n with thousands separators for log lines.
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
