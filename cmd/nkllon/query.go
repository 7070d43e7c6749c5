package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/query"
	"github.com/nkllon/topology/rdf"
)

func queryCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run a canned topology query",
		Long: `Runs one of the built-in topology queries against the deployment graph:

  devices       - every device, grouped by type
  bidirectional - bidirectional cables with their endpoints
  audio         - connections leaving audio interfaces
  critical      - uptime-critical hosts and their KVM port priority`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := rdf.LoadFiles(cfg.OntologyPath(), cfg.DeploymentPath(env))
			if err != nil {
				return err
			}
			return runQuery(store, args[0])
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "prod", "Deployment environment (dev, staging, prod)")

	return cmd
}

func runQuery(store *rdf.Store, name string) error {
	switch name {
	case "devices":
		for _, d := range query.AllDevices(store) {
			fmt.Printf("%-24s %s\n", d.Name, d.Type)
		}
	case "bidirectional":
		rows, err := query.BidirectionalCables(store)
		if err != nil {
			return fmt.Errorf("%w: %s", errValidationFailed, err)
		}
		for _, r := range rows {
			fmt.Printf("%s: %s (%s) <-> %s (%s)\n", r.Cable, r.SrcDevice, r.SrcForm, r.DstDevice, r.DstForm)
		}
	case "audio":
		rows, err := query.AudioConnections(store)
		if err != nil {
			return fmt.Errorf("%w: %s", errValidationFailed, err)
		}
		for _, r := range rows {
			fmt.Printf("%s -> %s via %s\n", r.AudioDevice, r.ConnectedDevice, r.Cable)
		}
	case "critical":
		rows, err := query.UptimeCriticalHosts(store)
		if err != nil {
			return fmt.Errorf("%w: %s", errValidationFailed, err)
		}
		for _, r := range rows {
			fmt.Printf("%s -> %s (priority %s)\n", r.Host, r.KVMPort, r.Priority)
		}
	default:
		return fmt.Errorf("%w: unknown query %q (want devices, bidirectional, audio, or critical)", errConfiguration, name)
	}
	return nil
}
