package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-formula/internal/pricegen"
	"github.com/rxtech-lab/argo-formula/internal/workspace"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "argo-formula-explore",
		Usage: "Interactively build indicators and strategies over a generated price series",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "points",
				Usage: "Number of closes to generate",
				Value: pricegen.DefaultPoints,
			},
			&cli.FloatFlag{
				Name:  "volatility",
				Usage: "Annualised volatility of the generated series",
				Value: pricegen.DefaultVolatility,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for the price generator",
				Value: 42,
			},
		},
		Action: runExplore,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func runExplore(ctx context.Context, cmd *cli.Command) error {
	ws := workspace.New(
		workspace.WithPriceSource(pricegen.NewGenerator(int64(cmd.Int("seed")))),
		workspace.WithDataParams(int(cmd.Int("points")), cmd.Float("volatility")),
	)

	if err := ws.Regenerate(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(ws), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}

	return nil
}
