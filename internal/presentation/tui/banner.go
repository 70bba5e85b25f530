package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for lode.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber-to-gold scheme, fitting for ore.
	s1 := termenv.String("  _           _      ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(" | | ___   __| | ___ ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |/ _ \\ / _` |/ _ \\").Foreground(p.Color("#d97706"))
	s4 := termenv.String(" | | (_) | (_| |  __/").Foreground(p.Color("#b45309"))
	s5 := termenv.String(" |_|\\___/ \\__,_|\\___|").Foreground(p.Color("#92400e"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
