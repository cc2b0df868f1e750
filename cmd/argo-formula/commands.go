package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-formula/internal/api"
	"github.com/rxtech-lab/argo-formula/internal/config"
	"github.com/rxtech-lab/argo-formula/internal/logger"
	"github.com/rxtech-lab/argo-formula/internal/metrics"
	"github.com/rxtech-lab/argo-formula/internal/pricegen"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/internal/version"
	"github.com/rxtech-lab/argo-formula/internal/workspace"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 5 * time.Second

func newLogger(cmd *cli.Command, level zapcore.Level) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	return logger.NewLoggerWithLevel(level)
}

func evalAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd, zapcore.WarnLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ws := workspace.New(
		workspace.WithLogger(log),
		workspace.WithPriceSource(pricegen.NewGenerator(int64(cmd.Int("seed")))),
		workspace.WithDataParams(int(cmd.Int("points")), cmd.Float("volatility")),
	)

	if err := ws.Regenerate(ctx); err != nil {
		return err
	}

	formula := cmd.String("formula")

	series, err := ws.Evaluate(formula)
	if err != nil {
		return err
	}

	printSeries(cmd.Root().Writer, formula, ws.Closes(), series, int(cmd.Int("tail")))

	return nil
}

func printSeries(out io.Writer, name string, closes, series types.Series, tail int) {
	start := max(0, len(series)-max(tail, 0))

	fmt.Fprintln(out, TitleStyle.Render(name))
	fmt.Fprintln(out, HelpStyle.Render(fmt.Sprintf("%d samples, showing last %d", len(series), len(series)-start)))
	fmt.Fprintf(out, "%6s  %12s  %12s\n", "index", "close", "value")

	for i := start; i < len(series); i++ {
		fmt.Fprintf(out, "%6d  %12s  %12s\n", i, FormatValue(closes.At(i)), FormatValue(series[i]))
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd, zapcore.WarnLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	ws, err := cfg.NewWorkspace(ctx, workspace.WithLogger(log))
	if err != nil {
		return err
	}

	overlays, err := ws.Overlays()
	if err != nil {
		return err
	}

	signals, err := ws.Signals()
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	printOverlays(out, ws.Len(), overlays)
	fmt.Fprintln(out)
	printSignals(out, ws.Strategies(), signals)

	return nil
}

func printOverlays(out io.Writer, points int, overlays []types.Overlay) {
	fmt.Fprintln(out, TitleStyle.Render("Overlays"))
	fmt.Fprintln(out, HelpStyle.Render(fmt.Sprintf("%d samples", points)))

	if len(overlays) == 0 {
		fmt.Fprintln(out, HelpStyle.Render("no indicators defined"))
		return
	}

	for _, o := range overlays {
		fmt.Fprintf(out, "%s %s  last=%s\n", Swatch(o.Color), LabelStyle.Render(o.Name), FormatValue(o.Series.Last()))
	}
}

func printSignals(out io.Writer, strategies []workspace.Strategy, signals []types.Signal) {
	fmt.Fprintln(out, TitleStyle.Render("Signals"))

	if len(strategies) == 0 {
		fmt.Fprintln(out, HelpStyle.Render("no strategies defined"))
		return
	}

	byStrategy := make(map[string][]types.Signal, len(strategies))
	for _, s := range signals {
		byStrategy[s.Strategy] = append(byStrategy[s.Strategy], s)
	}

	for _, st := range strategies {
		found := byStrategy[st.ID]
		fmt.Fprintf(out, "%s %s  (%d signals)\n", Swatch(st.Color), LabelStyle.Render(st.Name), len(found))

		indices := make([]string, 0, len(found))
		for _, s := range found {
			indices = append(indices, fmt.Sprintf("%s@%d", FormatSignal(s.Kind), s.Index))
		}

		if len(indices) > 0 {
			fmt.Fprintln(out, "  "+strings.Join(indices, " "))
		}
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd, zapcore.InfoLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	server := api.NewServer(api.ServerConfig{
		Logger:   log,
		Metrics:  metrics.NewMetrics(),
		Registry: nil,
	})

	if err := server.Start(cmd.String("addr")); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("Shutting down API server", zap.String("address", server.Address()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Stop(shutdownCtx)
}

func versionAction(_ context.Context, cmd *cli.Command) error {
	fmt.Fprintln(cmd.Root().Writer, version.GetVersion())

	return nil
}
