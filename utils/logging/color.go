// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// Color is an ANSI escape sequence that changes the display color of the text
// that follows it.
type Color string

const (
	Black       Color = "\033[0;30m"
	Red         Color = "\033[0;31m"
	Green       Color = "\033[0;32m"
	Orange      Color = "\033[0;33m"
	Blue        Color = "\033[0;34m"
	Purple      Color = "\033[0;35m"
	Cyan        Color = "\033[0;36m"
	LightGray   Color = "\033[0;37m"
	DarkGray    Color = "\033[1;30m"
	LightRed    Color = "\033[1;31m"
	LightGreen  Color = "\033[1;32m"
	Yellow      Color = "\033[1;33m"
	LightBlue   Color = "\033[1;34m"
	LightPurple Color = "\033[1;35m"
	LightCyan   Color = "\033[1;36m"
	White       Color = "\033[1;37m"

	Reset Color = "\033[0;0m"
	Bold  Color = "\033[;1m"
	Dim   Color = "\033[;2m"
)

// Wrap wraps text in the color and resets the display afterwards.
func (c Color) Wrap(text string) string {
	return string(c) + text + string(Reset)
}
