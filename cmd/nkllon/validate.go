package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/config"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/report"
	"github.com/nkllon/topology/shacl"
)

func validateCmd(quiet *bool) *cobra.Command {
	var (
		env          string
		exportPath   string
		formatName   string
		abortOnFirst bool
	)

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate a deployment topology against the constraint catalog",
		Long: `Loads the ontology and deployment graph for the selected environment,
merges any additional graph files given as arguments, and checks the
result against every shape in the constraint catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rep, err := runValidation(cfg, env, args, abortOnFirst)
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := exportReport(rep, exportPath, formatName); err != nil {
					return err
				}
			}

			if !*quiet {
				format := report.FormatText
				if formatName != "" {
					format, err = report.ParseFormat(formatName)
					if err != nil {
						return fmt.Errorf("%w: %s", errConfiguration, err)
					}
				}
				out, err := report.Render(rep, format)
				if err != nil {
					return fmt.Errorf("%w: %s", errValidationFailed, err)
				}
				fmt.Println(out)
			}

			if !rep.Conforms {
				return errNonConforming
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "prod", "Deployment environment (dev, staging, prod)")
	cmd.Flags().StringVarP(&exportPath, "export", "o", "", "Write the report to a file")
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Report format (text, json, markdown, html)")
	cmd.Flags().BoolVar(&abortOnFirst, "abort-on-first", false, "Stop at the first constraint failure")

	return cmd
}

// runValidation loads the graphs and catalog for env and validates them.
// Extra graph files are merged on top of the configured sources.
func runValidation(cfg *config.Config, env string, extra []string, abortOnFirst bool) (*shacl.Report, error) {
	paths := []string{cfg.OntologyPath(), cfg.DeploymentPath(env)}
	sources, err := cfg.ExpandSources()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errConfiguration, err)
	}
	paths = append(paths, sources...)
	paths = append(paths, extra...)

	store, err := rdf.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}

	catalog, err := shacl.LoadCatalog(cfg.ShapesPath())
	if err != nil {
		return nil, err
	}

	slog.Debug("validating deployment",
		slog.String("environment", env),
		slog.Int("statements", store.Len()),
		slog.Int("shapes", len(catalog.Shapes)))

	opts := shacl.Options{
		AbortOnFirst: abortOnFirst || cfg.Validation.AbortOnFirst,
		MaxBindings:  cfg.Validation.MaxBindings,
		Logger:       slog.Default(),
	}
	return shacl.Validate(store, catalog, opts), nil
}

// exportReport writes the report to path, inferring the format from the
// extension unless one is given explicitly.
func exportReport(rep *shacl.Report, path, formatName string) error {
	format := report.DetectFormat(path)
	if formatName != "" {
		var err error
		format, err = report.ParseFormat(formatName)
		if err != nil {
			return fmt.Errorf("%w: %s", errConfiguration, err)
		}
	}
	out, err := report.Render(rep, format)
	if err != nil {
		return fmt.Errorf("%w: %s", errValidationFailed, err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("%w: writing report: %s", errValidationFailed, err)
	}
	slog.Info("report written", slog.String("path", path), slog.String("format", string(format)))
	return nil
}
