package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/diff"
	"github.com/nkllon/topology/rdf"
)

func diffCmd() *cobra.Command {
	var entitiesOnly bool

	cmd := &cobra.Command{
		Use:   "diff <before.ttl> <after.ttl>",
		Short: "Compare two topology snapshots",
		Long: `Partitions the statements of two graph files into common, removed, and
added sets, then reports which entities changed and how.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := rdf.LoadFiles(args[0])
			if err != nil {
				return err
			}
			after, err := rdf.LoadFiles(args[1])
			if err != nil {
				return err
			}

			result := diff.Compare(before, after)
			printDiff(result, entitiesOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&entitiesOnly, "entities-only", false, "Show entity-level changes without individual statements")

	return cmd
}

func printDiff(result *diff.Result, entitiesOnly bool) {
	changes := result.EntityChanges()
	if len(changes) == 0 {
		fmt.Println("No differences.")
		return
	}

	entities := make([]string, 0, len(changes))
	for entity := range changes {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	for _, entity := range entities {
		change := changes[entity]
		fmt.Printf("%s %s\n", changeMarker(change.Kind), rdf.LocalName(entity))
		for _, pred := range change.Predicates {
			fmt.Printf("    %s\n", rdf.LocalName(pred))
		}
	}

	if !entitiesOnly {
		fmt.Println()
		for st := range result.OnlyA.All() {
			fmt.Printf("- %s\n", st)
		}
		for st := range result.OnlyB.All() {
			fmt.Printf("+ %s\n", st)
		}
	}

	fmt.Printf("\n%d common, %d removed, %d added\n",
		result.Common.Len(), result.OnlyA.Len(), result.OnlyB.Len())
}

func changeMarker(kind diff.ChangeKind) string {
	switch kind {
	case diff.Added:
		return "+"
	case diff.Removed:
		return "-"
	default:
		return "~"
	}
}
