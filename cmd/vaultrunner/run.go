package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/interp"
	"github.com/TheCYPER/TheVaultRunner/internal/state"
	"github.com/TheCYPER/TheVaultRunner/internal/telemetry"
	"github.com/TheCYPER/TheVaultRunner/internal/world"
)

func newRunCmd() *cobra.Command {
	var (
		mapName     string
		start       string
		facing      string
		record      bool
		show        bool
		watch       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run [file.runner]",
		Short: "Run a program on a map",
		Long: `One-shot program run: tokenize, parse, execute, print the outcome.
--map takes a built-in map name or a path to a map file. With --watch
the file is re-run on every change, which pairs well with
--metrics-addr to watch step counts between edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]

			startX, startY, err := parseStart(start)
			if err != nil {
				return err
			}
			dir, err := world.ParseDirection(facing)
			if err != nil {
				return err
			}
			rows, mapLabel, err := loadMapRows(mapName)
			if err != nil {
				return err
			}

			opts := runOptions{
				mapLabel: mapLabel,
				mapRows:  rows,
				startX:   startX,
				startY:   startY,
				facing:   dir,
				record:   record,
				show:     show,
			}

			if !watch {
				res, err := runOnce(cmd.Context(), file, opts, nil)
				if err != nil {
					return err
				}
				printResult(res)
				if !res.Success {
					os.Exit(1)
				}
				return nil
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return watchLoop(ctx, file, opts, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&mapName, "map", "corridor", "Built-in map name or path to a map file")
	cmd.Flags().StringVar(&start, "start", "1,1", "Start position as x,y")
	cmd.Flags().StringVar(&facing, "facing", "east", "Start heading: north, east, south, west")
	cmd.Flags().BoolVar(&record, "record", false, "Append the run to the history file")
	cmd.Flags().BoolVar(&show, "show", false, "Render the world before and after the run")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run on program file changes")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while watching")

	return cmd
}

type runOptions struct {
	mapLabel string
	mapRows  []string
	startX   int
	startY   int
	facing   world.Direction
	record   bool
	show     bool
}

// loadMapRows resolves --map: built-in names win, anything else is read
// as a map file. The label keeps file maps short in logs and history.
func loadMapRows(name string) ([]string, string, error) {
	if build, ok := world.BuiltinMaps()[name]; ok {
		return build(), name, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown map %q and no such file (try 'vaultrunner maps'): %w", name, err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return rows, filepath.Base(name), nil
}

// runOnce executes the program file on a fresh world and optionally
// records the run. metrics may be nil.
func runOnce(ctx context.Context, file string, opts runOptions, metrics *telemetry.Metrics) (interp.Result, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return interp.Result{}, fmt.Errorf("reading program: %w", err)
	}

	grid, err := world.ParseMap(opts.mapRows)
	if err != nil {
		return interp.Result{}, fmt.Errorf("bad map %q: %w", opts.mapLabel, err)
	}
	bot := world.NewBot(grid, opts.startX, opts.startY, opts.facing)

	if opts.show {
		fmt.Println(grid.Render(bot))
	}

	logger := newRunLogger(ctx, file, opts.mapLabel)
	tracer := telemetry.NewTracer(telemetry.SpanExporterFunc(func(span telemetry.Span) {
		logger.Debug("span finished",
			"operation", span.Operation,
			"status", span.Status,
			"duration", span.Duration)
	}))

	started := time.Now()
	_, span := tracer.StartSpan(ctx, "run", telemetry.RunTags(filepath.Base(file), opts.mapLabel))
	res := interp.New(bot, interp.WithLogger(logger)).Run(string(source), filepath.Base(file))
	tracer.EndSpan(span, string(runStatus(res)))
	elapsed := time.Since(started)

	if metrics != nil {
		metrics.RecordRun(opts.mapLabel, string(runStatus(res)), res.Steps, elapsed)
	}

	if opts.show {
		fmt.Println()
		fmt.Println(grid.Render(bot))
	}

	if opts.record {
		backend := state.NewLocalBackend(historyFile)
		entry := state.Entry{
			ID:         state.NewEntryID(started),
			Program:    filepath.Base(file),
			Map:        opts.mapLabel,
			Status:     runStatus(res),
			Steps:      res.Steps,
			Diagnostic: res.Diagnostic,
			RanAt:      started.UTC(),
			Duration:   elapsed,
		}
		if err := backend.Append(entry); err != nil {
			return res, fmt.Errorf("recording run: %w", err)
		}
		logger.Debug("run recorded", "id", entry.ID)
	}

	return res, nil
}

func runStatus(res interp.Result) state.Status {
	switch {
	case res.Diagnostic != "":
		return state.StatusFault
	case res.Success:
		return state.StatusSolved
	default:
		return state.StatusFailed
	}
}

func printResult(res interp.Result) {
	switch {
	case res.Diagnostic != "":
		fmt.Printf("FAULT after %d steps: %s\n", res.Steps, res.Diagnostic)
	case res.Success:
		fmt.Printf("SOLVED in %d steps\n", res.Steps)
	default:
		fmt.Printf("NOT SOLVED after %d steps\n", res.Steps)
	}
}

// watchLoop re-runs the program whenever its file changes, until ctx is
// cancelled. Editors replace files on save, so Create events on the
// watched path count as changes too.
func watchLoop(ctx context.Context, file string, opts runOptions, metricsAddr string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: rename-and-replace saves would
	// otherwise drop the watch.
	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	metrics := telemetry.NewMetrics()
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(os.Stderr, "Serving metrics on %s/metrics\n", metricsAddr)
	}

	rerun := func() {
		res, err := runOnce(ctx, file, opts, metrics)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		printResult(res)
	}

	fmt.Fprintf(os.Stderr, "Watching %s (ctrl-c to stop)\n", file)
	rerun()

	target := filepath.Clean(file)
	// Editors emit bursts of events per save; coalesce them so each
	// save triggers exactly one rerun.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(200 * time.Millisecond)
		case <-pending:
			pending = nil
			fmt.Fprintf(os.Stderr, "\n%s changed, re-running\n", file)
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func newRunLogger(ctx context.Context, program, mapName string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	base := telemetry.NewLogger(os.Stderr, level)
	return telemetry.RunLogger(base, telemetry.WithCorrelationID(ctx, correlationID), filepath.Base(program), mapName)
}

func parseStart(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad --start %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad --start %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad --start %q: %w", s, err)
	}
	return x, y, nil
}
