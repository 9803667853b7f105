package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"fleet_status/internal/config"
	"fleet_status/internal/daemon"
	"fleet_status/internal/fleet"
	"fleet_status/internal/models"
	"fleet_status/internal/planning"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    64, // MB
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file (YAML)",
		Sources: cli.EnvVars(config.ConfigPathEnv),
	}
}

// loadConfig reads the configuration and sets up logging.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		os.Setenv(config.ConfigPathEnv, path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	initLogger(cfg)
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}
	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	failed := make(chan error, 1)
	go func() { failed <- d.Wait() }()

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-failed:
		if err != nil {
			slog.Error("Daemon failed", "error", err)
		}
	case <-ctx.Done():
	}

	return d.Stop()
}

func withStack(ctx context.Context, cmd *cli.Command, fn func(*daemon.Stack) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stack, err := daemon.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer stack.Close()
	return fn(stack)
}

func plan(ctx context.Context, cmd *cli.Command) error {
	return withStack(ctx, cmd, func(stack *daemon.Stack) error {
		res, err := stack.Service.Load(ctx, cmd.String("date"))
		if err != nil {
			return fmt.Errorf("failed to load fleet: %w", err)
		}
		printProjections(os.Stdout, res)
		return nil
	})
}

func history(ctx context.Context, cmd *cli.Command) error {
	return withStack(ctx, cmd, func(stack *daemon.Stack) error {
		ranges, err := stack.Service.History(ctx, cmd.String("tail"))
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		printHistory(os.Stdout, ranges)
		return nil
	})
}

func printProjections(out io.Writer, res *fleet.Result) {
	fmt.Fprintf(out, "Snapshot %s", res.Date)
	if !res.Exact {
		fmt.Fprintf(out, " (requested %s)", res.Requested)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAIL\tKIND\tNAME\tSERIAL\tCHECK\tREMAINING\tRATE/DAY\tDUE")
	for _, p := range res.Projections {
		due := "-"
		if p.DueYear != nil {
			due = fmt.Sprintf("%d (%d)", *p.DueYear, planning.BuddhistYear(*p.DueYear))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			p.Tail, p.Kind, p.Name, dash(p.Serial), p.CheckType, dash(p.Display), p.DailyRate, due)
	}
	w.Flush()
}

func printHistory(out io.Writer, ranges []models.HistoryRange) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAIL\tFROM\tTO\tDAYS\tREMARK")
	for _, r := range ranges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.Tail, r.Start, r.End, r.Count, r.Remark)
	}
	w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func main() {
	cmd := &cli.Command{
		Name:   "fleet_status",
		Usage:  "Fleet maintenance status and projections",
		Flags:  []cli.Flag{configFlag()},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the refresh scheduler and the JSON API",
				Flags:  []cli.Flag{configFlag()},
				Action: serve,
			},
			{
				Name:  "plan",
				Usage: "Print maintenance projections for a date",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Snapshot date; latest when empty"},
				},
				Action: plan,
			},
			{
				Name:  "history",
				Usage: "Print grouped inactive periods",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "tail", Aliases: []string{"t"}, Usage: "Tail number; whole fleet when empty"},
				},
				Action: history,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
