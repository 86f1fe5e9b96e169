package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/crudforge/database"
	"github.com/ridoystarlord/crudforge/introspect"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration and database connectivity",
	Long: `Check the effective configuration and, when DATABASE_URL is set, that the
database is reachable and the statistics extension is available.

Examples:
  crudforge check                    # Check current state
  crudforge check --timeout 10s      # Set custom timeout
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen, color.Bold)
		yellow := color.New(color.FgYellow, color.Bold)
		cyan := color.New(color.FgCyan)

		if f := cfgLoader.ConfigFile(); f != "" {
			cyan.Println("📄 Config file:", f)
		} else {
			cyan.Println("📄 No crudforge.yaml found, using defaults and environment")
		}
		opts := cfg.Options()
		cyan.Println("📦 Base package:", opts.BasePackage)
		cyan.Println("🌐 API prefix:  ", opts.APIPrefix)
		cyan.Println("📁 Sources:     ", cfg.SourceRoot)
		cyan.Println("📁 Resources:   ", cfg.ResourcesRoot)

		if cfg.DatabaseURL == "" {
			yellow.Println("⚠️  DATABASE_URL not set; table tools are unavailable")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		green.Println("✅ Database reachable")

		in := introspect.New(db, cfg.DBSchema)
		tables, err := in.ListTables(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("📊 Found %d tables in schema %s\n", len(tables), cfg.DBSchema)

		report, err := in.Analyze(ctx)
		if err != nil {
			return err
		}
		if report.Note != "" {
			yellow.Println("⚠️ ", report.Note)
		} else {
			green.Println("✅ Query statistics available")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().DurationVarP(&checkTimeout, "timeout", "t", 10*time.Second, "Timeout for the database check")
}
