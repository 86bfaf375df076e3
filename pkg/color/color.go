package color

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// IsTerminal reports whether f is attached to a terminal and NO_COLOR is unset
func IsTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func EnableColor(enable bool) {
	color.NoColor = !enable
}

func IsColorEnabled() bool {
	return !color.NoColor
}

func GreenText(text string) string {
	return green(text)
}

func YellowText(text string) string {
	return yellow(text)
}

func BlueText(text string) string {
	return blue(text)
}

func CyanText(text string) string {
	return cyan(text)
}

func GrayText(text string) string {
	return gray(text)
}
