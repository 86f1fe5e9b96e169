package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/crudforge/loader"
	"github.com/ridoystarlord/crudforge/schema"
)

var (
	validateEntitiesFile string
	validateFormat       string
)

type entityReport struct {
	Entity   string   `json:"entity"`
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an entities file without generating anything",
	Long: `Validate every entity of an entities file: identifier shapes, reserved Java
keywords, duplicate or implicit fields, type names and length constraints.

Examples:
  crudforge validate                      # Validate entities.yaml
  crudforge validate -f shop.yaml         # Validate another file
  crudforge validate --format json        # Machine readable output
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entities, err := loader.LoadEntitiesFromYAML(validateEntitiesFile)
		if err != nil {
			return err
		}

		opts := cfg.Options()
		reports := make([]entityReport, 0, len(entities))
		failed := 0
		for _, req := range entities {
			r := entityReport{Entity: req.EntityName, Valid: true, Warnings: []string{}}
			_, warnings, err := schema.Build(req, opts)
			if err != nil {
				r.Valid = false
				r.Error = err.Error()
				failed++
			}
			r.Warnings = append(r.Warnings, warnings...)
			reports = append(reports, r)
		}

		if validateFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}
		} else {
			printEntityReports(reports)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d entities are invalid", failed, len(entities))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateEntitiesFile, "file", "f", "entities.yaml", "Entities file to validate")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func printEntityReports(reports []entityReport) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	for _, r := range reports {
		if r.Valid {
			green.Printf("✅ %s\n", r.Entity)
		} else {
			red.Printf("❌ %s: %s\n", r.Entity, r.Error)
		}
		for _, w := range r.Warnings {
			yellow.Printf("   ⚠️  %s\n", w)
		}
	}
}
