package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"riseabove/cmd/skilltui/ui"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:5000", "RiseAbove server URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*server), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "skilltui:", err)
		os.Exit(1)
	}
}
