package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/ontology"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/shacl"
)

func infoCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show resolved configuration and graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Project root:    %s\n", cfg.Project.Root)
			fmt.Printf("Ontology:        %s\n", cfg.OntologyPath())
			fmt.Printf("Constraints:     %s\n", cfg.ShapesPath())
			fmt.Printf("Deployment (%s): %s\n", env, cfg.DeploymentPath(env))

			store, err := rdf.LoadFiles(cfg.OntologyPath(), cfg.DeploymentPath(env))
			if err != nil {
				return err
			}
			idx := ontology.NewIndex(store, nil)
			fmt.Printf("\nStatements:      %d\n", store.Len())
			fmt.Printf("Typed entities:  %d\n", len(idx.Entities()))

			catalog, err := shacl.LoadCatalog(cfg.ShapesPath())
			if err != nil {
				return err
			}
			fmt.Printf("Shapes:          %d\n", len(catalog.Shapes))
			for _, shape := range catalog.Shapes {
				fmt.Printf("  %s (target %s): %d properties, %d rules\n",
					shape.Name, rdf.LocalName(shape.Target), len(shape.Properties), len(shape.Rules))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "prod", "Deployment environment (dev, staging, prod)")

	return cmd
}
