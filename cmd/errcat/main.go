package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/numlink/numlink/errman"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entry struct {
	Name    string `json:"name"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func main() {
	var (
		jsonOut = flag.Bool("json", false, "Emit the catalog as JSON")
		filter  = flag.String("filter", "", "Only show errors whose name contains this substring")
	)
	flag.Parse()

	if err := run(*jsonOut, *filter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(jsonOut bool, filter string) error {
	var entries []entry
	for _, e := range errman.Default().Entries() {
		if filter != "" && !strings.Contains(e.Name(), filter) {
			continue
		}
		entries = append(entries, entry{Name: e.Name(), ID: e.ID(), Message: e.Message()})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Registered errors (%d)", len(entries))))
	width := 0
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}
	for _, e := range entries {
		fmt.Printf("%s %s  %s\n",
			idStyle.Render(fmt.Sprintf("%4d", e.ID)),
			nameStyle.Render(fmt.Sprintf("%-*s", width, e.Name)),
			msgStyle.Render(e.Message))
	}
	return nil
}
