package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/viz"
)

func visualizeCmd() *cobra.Command {
	var (
		env     string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render the deployment topology as an interactive HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := rdf.LoadFiles(cfg.OntologyPath(), cfg.DeploymentPath(env))
			if err != nil {
				return err
			}

			graph, err := viz.Extract(store)
			if err != nil {
				return fmt.Errorf("%w: %s", errValidationFailed, err)
			}
			page, err := viz.RenderHTML(graph)
			if err != nil {
				return fmt.Errorf("%w: %s", errValidationFailed, err)
			}
			if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
				return fmt.Errorf("%w: writing page: %s", errValidationFailed, err)
			}

			slog.Info("visualization written",
				slog.String("path", outPath),
				slog.Int("nodes", len(graph.Nodes)),
				slog.Int("edges", len(graph.Edges)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "prod", "Deployment environment (dev, staging, prod)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "topology.html", "Output HTML file")

	return cmd
}
