package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/crudforge/emitter"
	"github.com/ridoystarlord/crudforge/generator"
	"github.com/ridoystarlord/crudforge/loader"
	"github.com/ridoystarlord/crudforge/schema"
)

var (
	entitiesFile      string
	generateFamily    string
	generateInfra     bool
	generateMigration bool
	dryRunGenerate    bool
)

var families = map[string]generator.Family{
	"entity":     generator.EntityOnly,
	"crud":       generator.FullCRUD,
	"dtos":       generator.DTOs,
	"controller": generator.ControllerOnly,
	"all":        generator.TableCRUD,
}

func familyNames() string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func init() {
	generateCmd.Flags().StringVarP(&entitiesFile, "file", "f", "entities.yaml", "Entities YAML file to load")
	generateCmd.Flags().StringVarP(&generateFamily, "family", "F", "all", "Artifacts to generate ("+familyNames()+")")
	generateCmd.Flags().BoolVar(&generateInfra, "infra", false, "Also generate OpenAPIConfig and GlobalExceptionHandler")
	generateCmd.Flags().BoolVar(&generateMigration, "migration", false, "Also generate a CREATE TABLE migration per entity")
	generateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Print the generated files without writing them")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sources for every entity of an entities file",
	Long: `Generate Spring Boot sources for every entity listed in an entities file.

Examples:
  crudforge generate                          # entities.yaml, every artifact
  crudforge generate -f shop.yaml -F crud     # entity, repository, service, controller
  crudforge generate --infra --migration      # plus infrastructure and migrations
  crudforge generate --dry-run                # preview without writing
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		family, ok := families[generateFamily]
		if !ok {
			return fmt.Errorf("unknown family %q (want one of %s)", generateFamily, familyNames())
		}

		entities, err := loader.LoadEntitiesFromYAML(entitiesFile)
		if err != nil {
			return err
		}

		opts := cfg.Options()
		now := time.Now()
		yellow := color.New(color.FgYellow)

		var artifacts []schema.SourceArtifact
		for i, req := range entities {
			shape, warnings, err := schema.Build(req, opts)
			if err != nil {
				return fmt.Errorf("entity %d (%s): %w", i+1, req.EntityName, err)
			}
			for _, w := range warnings {
				yellow.Printf("⚠️  %s: %s\n", shape.Name.Pascal, w)
			}

			artifacts = append(artifacts, generator.Generate(emitter.Java, shape, family)...)

			if generateMigration {
				// One second apart so versions stay unique and ordered.
				at := now.Add(time.Duration(i) * time.Second)
				m, err := generator.NewMigration(emitter.Java, "create "+shape.Table, generator.CreateTableSQL(shape), at)
				if err != nil {
					return err
				}
				artifacts = append(artifacts, m)
			}
		}
		if generateInfra {
			artifacts = append(artifacts, generator.Infrastructure(emitter.Java, opts)...)
		}

		w := settingsFrom(cfg).Writer
		if dryRunGenerate {
			fmt.Println("\n================ DRY RUN: Generated Files ================")
			for _, a := range artifacts {
				color.New(color.FgCyan, color.Bold).Println("// " + w.Path(a))
				fmt.Println(a.Content)
			}
			fmt.Println("==========================================================")
			fmt.Println("(Dry run only. No files were written.)")
			return nil
		}

		written, err := w.WriteAll(artifacts)
		for _, p := range written {
			color.New(color.FgGreen).Println("✅", p)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Generated %d file(s) for %d entit(ies)\n", len(written), len(entities))
		return nil
	},
}
