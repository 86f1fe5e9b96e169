package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/crudforge/config"
	"github.com/ridoystarlord/crudforge/database"
	"github.com/ridoystarlord/crudforge/logs"
	"github.com/ridoystarlord/crudforge/tool"
	"github.com/ridoystarlord/crudforge/writer"
)

var (
	configFile string
	cfgLoader  *config.Loader
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "crudforge",
	Short: "Generate Spring Boot CRUD sources from entity descriptions or live tables",
	Long: `crudforge turns an entity description or an existing PostgreSQL table into a
Spring Boot resource: JPA entity, DTOs, repository, service, REST controller
and versioned SQL migrations.

Examples:

  crudforge init
  crudforge generate -f entities.yaml
  crudforge from-table job_applications --crud
  crudforge migration "add resume column" --sql-file resume.sql
  crudforge serve
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfgLoader, err = config.NewLoader(configFile)
		if err != nil {
			return err
		}
		cfg, err = cfgLoader.Config()
		if err != nil {
			return err
		}
		return logs.Init("crudforge", cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logs.Sync()
	},
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "❌", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ./crudforge.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(migrationCmd)
	rootCmd.AddCommand(infraCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(fromTableCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}

// settingsFrom maps the loaded configuration onto the adapter settings.
func settingsFrom(c *config.Config) tool.Settings {
	return tool.Settings{
		Options:  c.Options(),
		DBSchema: c.DBSchema,
		Writer: writer.Writer{
			SourceRoot:    c.SourceRoot,
			ResourcesRoot: c.ResourcesRoot,
		},
	}
}

// connector opens DATABASE_URL as currently configured.
func connector(get func() *config.Config) tool.Connector {
	return func(ctx context.Context) (tool.DB, error) {
		db, err := database.Open(ctx, get().DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

func newAdapter() *tool.Adapter {
	return tool.New(settingsFrom(cfg), connector(func() *config.Config { return cfg }))
}

// runTool calls a tool and prints its result. A failed tool is returned as
// an error so the process exits 1.
func runTool(cmd *cobra.Command, name string, args map[string]any) error {
	result := newAdapter().Call(cmd.Context(), name, args)
	printResult(result)
	if result.IsError {
		return fmt.Errorf("%s failed", name)
	}
	return nil
}

func printResult(r *tool.Result) {
	out := color.New(color.FgGreen)
	if r.IsError {
		out = color.New(color.FgRed)
	}
	for _, c := range r.Content {
		out.Print(c.Text)
	}
}
