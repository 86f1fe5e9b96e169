package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const configTemplate = `# crudforge configuration. Every key can be overridden with a CRUDFORGE_*
# environment variable, e.g. CRUDFORGE_API_PREFIX=/api/v2.
# DATABASE_URL is read from the environment or a .env file.

db_schema: public
base_package: com.example.app
# source_root defaults to src/main/java/<base_package as a path>.
# source_root: src/main/java/com/example/app
resources_root: src/main/resources
api_prefix: /api/v1
allowed_origin: http://localhost:5173

api:
  title: Generated API
  version: 1.0.0
  description: ""
  contact_name: ""
  contact_email: ""
  servers:
    - http://localhost:8080

log:
  level: info
  file: ""
  dev: false
`

const entitiesTemplate = `# Entities for 'crudforge generate'. Types: string, text, integer, long,
# short, boolean, date, datetime, time, decimal, float, double, uuid.
entities:
  - entityName: JobPost
    fields:
      - name: title
        type: string
        required: true
        maxLength: 100
      - name: description
        type: text
      - name: salaryMin
        type: decimal
      - name: contactEmail
        type: string
        isEmail: true
      - name: publishedOn
        type: date
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter crudforge.yaml and entities.yaml",
	Long: `Initialize a crudforge project in the current directory.

Existing files are kept unless --force is given.

Examples:
  crudforge init
  crudforge init --force
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range []struct{ name, content string }{
			{"crudforge.yaml", configTemplate},
			{"entities.yaml", entitiesTemplate},
		} {
			if err := writeStarter(f.name, f.content); err != nil {
				return err
			}
		}
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit entities.yaml")
		fmt.Println("  2. Run 'crudforge generate --infra --migration'")
		return nil
	},
}

func writeStarter(name, content string) error {
	if _, err := os.Stat(name); err == nil && !initForce {
		color.New(color.FgYellow, color.Bold).Printf("⚠️  %s already exists, skipping\n", name)
		return nil
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	color.New(color.FgGreen, color.Bold).Println("✅ Created", name)
	return nil
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}
