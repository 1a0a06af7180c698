// Command mokuhyo renders read-only OKR reports from the GTMHub API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashita-ai/mokuhyo/gtmhub"
	"github.com/ashita-ai/mokuhyo/internal/config"
	"github.com/ashita-ai/mokuhyo/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app holds the persistent flag state shared by all subcommands.
type app struct {
	configFile string
	verbosity  int
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mokuhyo",
		Short:         "Fetch GTMHub OKR data",
		Long:          "mokuhyo fetches teams, planning sessions, and goals from the GTMHub API\nand renders filtered, hierarchical reports to the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; production shells export the variables directly.
			_ = godotenv.Load()
			setupLogging(a.verbosity)
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config-file", "c", "", "credential file to use instead of the default")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log detail, repeatable (default: errors only)")

	root.AddCommand(a.teamsCommand(), a.sessionsCommand(), a.goalsCommand())
	return root
}

func (a *app) teamsCommand() *cobra.Command {
	var ids bool

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Display teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			res, err := client.Teams(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("fetched teams", "count", res.TotalCount)
			report.WriteTeams(cmd.OutOrStdout(), res.Items, ids)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&ids, "ids", "i", false, "show team ids too")
	return cmd
}

func (a *app) sessionsCommand() *cobra.Command {
	var (
		all     bool
		current bool
		ids     bool
	)

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Display sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			res, err := client.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("fetched sessions", "count", res.TotalCount)

			mode := report.ModeOpen
			switch {
			case all:
				mode = report.ModeAll
			case current:
				mode = report.ModeCurrent
			}
			filtered := report.FilterSessions(res.Items, mode, nowUTC())
			report.WriteSessions(cmd.OutOrStdout(), filtered, ids)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "show all sessions, not just active ones")
	cmd.Flags().BoolVar(&current, "current", false, "show only currently running sessions")
	cmd.Flags().BoolVarP(&ids, "ids", "i", false, "show session ids too")
	cmd.MarkFlagsMutuallyExclusive("all", "current")
	return cmd
}

func (a *app) goalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Display current team goals grouped by session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}

			// Goals first, then sessions, strictly sequential.
			goals, err := client.Goals(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("fetched goals", "count", goals.TotalCount)

			sessions, err := client.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("fetched sessions", "count", sessions.TotalCount)

			report.WriteGoalReport(cmd.OutOrStdout(), goals.Items, sessions.Items, nowUTC())
			return nil
		},
	}
}

// newClient resolves credentials (env first, then the store with its
// prompt-and-persist fallback) and builds the API client.
func (a *app) newClient() (*gtmhub.Client, error) {
	creds, ok := config.FromEnv()
	if !ok {
		store, err := config.NewStore(a.configFile)
		if err != nil {
			return nil, err
		}
		creds, err = config.Resolve(store, &config.TerminalPrompter{In: os.Stdin, Out: os.Stdout})
		if err != nil {
			return nil, err
		}
	}
	return gtmhub.NewClient(gtmhub.Config{
		AccountID: creds.AccountID,
		APIToken:  creds.APIToken,
	})
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func setupLogging(verbosity int) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(verbosity),
	}))
	slog.SetDefault(logger)
}

// logLevel maps the counted -v flag to a slog level: errors only by
// default, info at -v, debug at -vv and beyond.
func logLevel(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}
