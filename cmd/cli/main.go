package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jaeyoung-ko/roomrota/internal/config"
	"github.com/jaeyoung-ko/roomrota/pkg/clients/sheetsclient"
	"github.com/jaeyoung-ko/roomrota/pkg/core/model"
	"github.com/jaeyoung-ko/roomrota/pkg/core/services"
	"github.com/jaeyoung-ko/roomrota/pkg/db"
	"github.com/jaeyoung-ko/roomrota/pkg/postgres"
	"github.com/jaeyoung-ko/roomrota/pkg/sheetssql"
	"github.com/jaeyoung-ko/roomrota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database db.Store
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roomrota",
		Short: "Roomrota CLI - Manage meeting room reservations",
		Long:  `A CLI tool for reserving meeting rooms, cancelling reservations, and running rotation-based auto-assignment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(reserveCmd())
	rootCmd.AddCommand(cancelCmd())
	rootCmd.AddCommand(autoAssignCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(invalidateCacheCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, storage client, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	if app.cfg.PostgresURL != "" {
		return initPostgres()
	}
	return initSheets()
}

// initSheets wires the default spreadsheet-backed store
func initSheets() error {
	app.logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.logger.Info("Initializing sheets client")
	sheetsClient, err := sheetsclient.NewClient(app.ctx, oauthCfg, env)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	schema, err := sheetssql.SchemaFromModels(db.Tables()...)
	if err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	app.logger.Info("Connecting to database",
		zap.String("spreadsheet_id", app.cfg.DatabaseSheetID),
		zap.Int("cache_ttl_seconds", app.cfg.CacheTTL()))
	ssqlDB, err := sheetssql.NewDB(
		sheetsClient,
		app.cfg.DatabaseSheetID,
		schema,
		time.Duration(app.cfg.CacheTTL())*time.Second,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	app.database = db.NewDB(ssqlDB, app.logger)
	app.logger.Info("Database initialized successfully")
	return nil
}

// initPostgres wires the alternate Postgres store
func initPostgres() error {
	app.logger.Info("Connecting to Postgres")
	pgDB, err := postgres.NewDB(app.ctx, app.cfg.PostgresURL, app.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pgDB.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.database = pgDB
	app.logger.Info("Database initialized successfully")
	return nil
}

// Command definitions

func reserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <date> <start> <end> <team> <room>",
		Short: "Create a manual reservation (date YYYY-MM-DD, times HH:MM)",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[0])
			if err != nil {
				return err
			}
			start, err := model.ParseClock(args[1])
			if err != nil {
				return err
			}
			end, err := model.ParseClock(args[2])
			if err != nil {
				return err
			}

			id, err := services.Reserve(app.ctx, app.database, app.logger, services.ReserveRequest{
				Date:  date,
				Start: start,
				End:   end,
				Team:  model.Team(args[3]),
				Room:  model.Room(args[4]),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Reservation created!\n\n")
			fmt.Printf("ID:   %s\n", id)
			fmt.Printf("Date: %s %s-%s\n", args[0], args[1], args[2])
			fmt.Printf("Team: %s  Room: %s\n\n", args[3], args[4])
			return nil
		},
	}
}

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <reservation_id>",
		Short: "Cancel a manual reservation by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.Cancel(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Reservation %s cancelled.\n\n", args[0])
			return nil
		},
	}
}

func autoAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoAssign <date>",
		Short: "Run rotation-based auto-assignment for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anyDay, _ := cmd.Flags().GetBool("any-day")

			date, err := model.ParseDate(args[0])
			if err != nil {
				return err
			}

			result, err := services.AutoAssign(app.ctx, app.database, app.logger, date, !anyDay)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Auto-assignment for %s (%s-%s)\n\n",
				model.FormatDate(result.Date),
				model.FormatClock(result.Window.Start),
				model.FormatClock(result.Window.End))
			for _, a := range result.Assignments {
				fmt.Printf("  %-8s → %s\n", a.Team, a.Room)
			}
			fmt.Printf("\nNext rotation cursor: %d\n\n", result.NextCursor)
			return nil
		},
	}

	cmd.Flags().Bool("any-day", false, "Allow auto-assignment on any weekday")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <date>",
		Short: "List reservations for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[0])
			if err != nil {
				return err
			}

			reservations, err := services.ListReservations(app.ctx, app.database, app.logger, date)
			if err != nil {
				return err
			}

			if len(reservations) == 0 {
				fmt.Printf("\nNo reservations on %s.\n\n", args[0])
				return nil
			}

			fmt.Printf("\nReservations on %s:\n\n", args[0])
			for _, r := range reservations {
				fmt.Printf("  %s-%s  %-8s %-8s [%s]  %s\n",
					model.FormatClock(r.Start),
					model.FormatClock(r.End),
					r.Room,
					r.Team,
					r.Kind,
					r.ID)
			}
			fmt.Println()
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [count]",
		Short: "Show upcoming auto-assignment dates (default 5)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 5
			if len(args) > 0 {
				var err error
				count, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
			}

			dates, err := services.UpcomingAutoDates(app.logger, app.cfg.AutoAssignRule, count)
			if err != nil {
				return err
			}

			fmt.Printf("\nUpcoming auto-assignment dates:\n\n")
			for i, d := range dates {
				fmt.Printf("  %2d. %s\n", i+1, d.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()
			return nil
		},
	}
}

func invalidateCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidateCache",
		Short: "Drop cached table reads so the next read hits the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.database.InvalidateCache()
			fmt.Println("\n✓ Cache invalidated.")
			return nil
		},
	}
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (authenticate once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without re-authenticating.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full Execute() flow
				// This avoids re-running PersistentPreRunE which would call initApp() again
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-40s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                                     Show this help message")
	fmt.Println("  exit, quit                               Exit the interactive session")
}
