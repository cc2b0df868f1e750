package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/rxtech-lab/argo-formula/internal/pricegen"
	"github.com/rxtech-lab/argo-formula/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "argo-formula",
		Usage:   "Evaluate indicator formulas and strategy rules over synthetic price data",
		Version: version.GetVersion(),
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "eval",
				Usage: "Evaluate a formula over a generated price series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "formula",
						Aliases:  []string{"f"},
						Usage:    "Formula to evaluate, e.g. `sma(close, 20)`",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "points",
						Aliases: []string{"n"},
						Usage:   "Number of close prices to generate (50-5000)",
						Value:   pricegen.DefaultPoints,
					},
					&cli.FloatFlag{
						Name:  "volatility",
						Usage: "Annualised volatility of the random walk (0.1-10)",
						Value: pricegen.DefaultVolatility,
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Random seed",
						Value: 42,
					},
					&cli.IntFlag{
						Name:  "tail",
						Usage: "Number of trailing samples to print",
						Value: 20,
					},
				},
				Action: evalAction,
			},
			{
				Name:  "run",
				Usage: "Build a workspace from a YAML config and print overlays and signals",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the workspace `FILE`",
						Required: true,
					},
				},
				Action: runAction,
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
				Action: serveAction,
			},
			{
				Name:   "version",
				Usage:  "Print the build version",
				Action: versionAction,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(ErrorStyle.Render(err.Error()))
	}
}
