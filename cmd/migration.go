package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/crudforge/loader"
)

var (
	migrationSQL     string
	migrationSQLFile string
	migrationEntity  string
)

var migrationCmd = &cobra.Command{
	Use:   "migration <description>",
	Short: "Create a versioned SQL migration",
	Long: `Create db/migration/V<timestamp>__<description>.sql under the resources root.

The body is either raw SQL or a CREATE TABLE synthesized from an entity of
the entities file.

Examples:
  crudforge migration "add resume column" --sql "ALTER TABLE job_applications ADD COLUMN resume TEXT;"
  crudforge migration "add resume column" --sql-file resume.sql
  crudforge migration "create job post" --entity JobPost -f entities.yaml
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs := map[string]any{"description": strings.Join(args, " ")}

		switch {
		case migrationSQLFile != "":
			data, err := os.ReadFile(migrationSQLFile)
			if err != nil {
				return fmt.Errorf("reading sql file: %w", err)
			}
			toolArgs["sql"] = string(data)
		case migrationSQL != "":
			toolArgs["sql"] = migrationSQL
		case migrationEntity != "":
			entities, err := loader.LoadEntitiesFromYAML(entitiesFile)
			if err != nil {
				return err
			}
			found := false
			for _, e := range entities {
				if e.EntityName == migrationEntity {
					toolArgs["entityName"] = e.EntityName
					toolArgs["fields"] = e.Fields
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("entity %q not found in %s", migrationEntity, entitiesFile)
			}
		default:
			return fmt.Errorf("one of --sql, --sql-file or --entity is required")
		}

		return runTool(cmd, "create_migration", toolArgs)
	},
}

func init() {
	migrationCmd.Flags().StringVar(&migrationSQL, "sql", "", "Migration SQL")
	migrationCmd.Flags().StringVar(&migrationSQLFile, "sql-file", "", "Read the migration SQL from a file")
	migrationCmd.Flags().StringVar(&migrationEntity, "entity", "", "Synthesize CREATE TABLE for this entity of the entities file")
	migrationCmd.Flags().StringVarP(&entitiesFile, "file", "f", "entities.yaml", "Entities YAML file used with --entity")
}
