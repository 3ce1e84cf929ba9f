package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Spade.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Earthy gradient, green to amber
	s1 := termenv.String(`   _____                 __`).Foreground(p.Color("#4ade80"))
	s2 := termenv.String(`  / ___/____  ____ _____/ /__`).Foreground(p.Color("#a3e635"))
	s3 := termenv.String(`  \__ \/ __ \/ __ ` + "`" + `/ __  / _ \`).Foreground(p.Color("#facc15"))
	s4 := termenv.String(` ___/ / /_/ / /_/ / /_/ /  __/`).Foreground(p.Color("#fb923c"))
	s5 := termenv.String(`/____/ .___/\__,_/\__,_/\___/`).Foreground(p.Color("#f87171"))
	s6 := termenv.String(`    /_/`).Foreground(p.Color("#f87171"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
