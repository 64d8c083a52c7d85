// Command trailterm draws the cursor wave trail in a terminal.
package main

import (
	"log"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/zach-dev-waves/internal/termview"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

var cli struct {
	Tuning     string  `help:"YAML file with trail tuning." env:"TRAIL_TUNING_FILE"`
	FPS        int     `help:"Frames per second." default:"60" env:"TRAIL_FRAME_RATE"`
	CellWidth  float64 `help:"Trail units per terminal column." default:"8"`
	CellHeight float64 `help:"Trail units per terminal row." default:"16"`
	Badge      string  `help:"Text of the magnetic badge." default:" zach.dev "`
}

func main() {
	kong.Parse(&cli,
		kong.Name("trailterm"),
		kong.Description("Move the mouse to leave a trail of colour waves."),
	)

	cfg := termview.DefaultConfig()
	if cli.Tuning != "" {
		opts, err := trail.LoadOptions(cli.Tuning)
		if err != nil {
			log.Fatalf("Failed to load trail tuning: %v", err)
		}
		cfg.Options = opts
	}
	cfg.FPS = cli.FPS
	cfg.CellWidth = cli.CellWidth
	cfg.CellHeight = cli.CellHeight
	cfg.Badge = cli.Badge

	p := tea.NewProgram(termview.New(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("trailterm: %v", err)
	}
}
