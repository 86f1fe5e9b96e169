package cmd

import (
	"github.com/spf13/cobra"
)

var fromTableCRUD bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the configured schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "list_tables", nil)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <table>",
	Short: "Describe the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "describe_table", map[string]any{"tableName": args[0]})
	},
}

var fromTableCmd = &cobra.Command{
	Use:   "from-table <table>",
	Short: "Generate an entity, or the full resource with --crud, from an existing table",
	Long: `Introspect a table and generate sources from its columns.

The id column becomes the generated id, created_at and updated_at become the
managed timestamps, and every other column becomes a field.

Examples:
  crudforge from-table job_applications          # entity only
  crudforge from-table job_applications --crud   # entity, DTOs, repository, service, controller
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "generate_entity_from_table"
		if fromTableCRUD {
			name = "generate_crud_from_table"
		}
		return runTool(cmd, name, map[string]any{"tableName": args[0]})
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report slow queries and column statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "analyze_performance", nil)
	},
}

var infraCmd = &cobra.Command{
	Use:   "infra",
	Short: "Generate OpenAPIConfig and GlobalExceptionHandler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "setup_api_infrastructure", nil)
	},
}

func init() {
	fromTableCmd.Flags().BoolVar(&fromTableCRUD, "crud", false, "Generate the full resource instead of the entity only")
}
