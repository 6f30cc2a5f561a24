package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/killallgit/waveform-comments/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for Waveform Comments.

The schema is derived from the models and applied with GORM's AutoMigrate,
which creates missing tables, columns and indexes but never drops them.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema",
	Long: `Apply the current schema to the configured database.

Missing tables, columns and indexes are created. Running it again is a no-op.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of the database schema.

Each application table is listed along with whether it exists.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	status, err := db.MigrationStatus()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSTATUS")
	pending := 0
	for _, s := range status {
		state := "applied"
		if !s.Exists {
			state = "pending"
			pending++
		}
		fmt.Fprintf(w, "%s\t%s\n", s.Table, state)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if pending > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d table(s) pending, run 'migrate up'\n", pending)
	}
	return nil
}
