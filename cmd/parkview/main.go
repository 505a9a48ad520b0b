package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	clientapi "github.com/lotops/parkview/internal/client/api"
	cacheboltdb "github.com/lotops/parkview/internal/client/cache/boltdb"
	"github.com/lotops/parkview/internal/client/cli"
	"github.com/lotops/parkview/internal/client/controller"
	historysqlite "github.com/lotops/parkview/internal/client/history/sqlite"
	"github.com/lotops/parkview/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func defaultServerURL() string {
	if url := os.Getenv("PARKVIEW_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8000"
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", defaultServerURL(), "Backend base URL")
	cachePath := flag.String("cache", "parkview-cache.db", "Path to the snapshot cache database")
	historyPath := flag.String("history", "parkview-history.db", "Path to the command history database")
	interval := flag.Duration("interval", controller.DefaultPollInterval, "Background poll interval")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	apiClient := clientapi.NewClient(*serverURL)

	// both local databases are conveniences: losing them degrades the
	// experience, never the commands themselves
	var cache controller.SnapshotCache
	snapshotCache, err := cacheboltdb.New(ctx, *cachePath)
	if err != nil {
		logger.Warn("snapshot cache unavailable", "path", *cachePath, "error", err)
	} else {
		cache = snapshotCache
		defer func() {
			if err := snapshotCache.Close(); err != nil {
				logger.Warn("failed to close snapshot cache", "error", err)
			}
		}()
	}

	var history cli.HistoryStore
	historyStorage, err := historysqlite.New(ctx, *historyPath)
	if err != nil {
		logger.Warn("command history unavailable", "path", *historyPath, "error", err)
	} else {
		history = historyStorage
		defer func() {
			if err := historyStorage.Close(); err != nil {
				logger.Warn("failed to close command history", "error", err)
			}
		}()
	}

	ctrl := controller.New(apiClient, cache, logger, *interval)
	commands := cli.New(ctrl, history, iocli.NewStdio(), logger)

	if err := runCommand(ctx, commands, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, commands *cli.Cli, command string, args []string) error {
	switch command {
	case "park":
		return commands.RunPark(ctx, args)
	case "leave":
		return commands.RunLeave(ctx, args)
	case "configure":
		return commands.RunConfigure(ctx, args)
	case "status":
		return commands.RunStatus(ctx)
	case "watch":
		return commands.RunWatch(ctx)
	case "history":
		return commands.RunHistory(ctx, args)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printVersion() {
	fmt.Printf("parkview\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
