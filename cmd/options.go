package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/catalog"
	"github.com/abhisek/fitplan/internal/fitness"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the fitness options tailored to an age and selection",
	Example: `  fitplan options --age 65
  fitplan options --age 30 --select goal=build_muscle --select workout=yoga`,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		picks, _ := cmd.Flags().GetStringSlice("select")
		notes, _ := cmd.Flags().GetBool("notes")

		if age <= 0 {
			return fmt.Errorf("--age must be a positive number")
		}
		sel, err := parseSelections(picks)
		if err != nil {
			return err
		}

		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		var res catalog.Result
		if sel.IsEmpty() {
			res = d.catalog.Load(cmd.Context(), age)
		} else {
			res = d.catalog.Refresh(cmd.Context(), age, sel)
		}
		if res.Catalog == nil {
			return fmt.Errorf("%s", api.UserMessage(res.Err, "Error fetching fitness options."))
		}
		if res.Stale {
			fmt.Println("Showing saved options:", api.UserMessage(res.Err, "backend unavailable"))
			fmt.Println()
		}
		printCatalog(res.Catalog, sel, notes)
		return nil
	},
}

func init() {
	optionsCmd.Flags().Int("age", 0, "Age to tailor options for (required)")
	optionsCmd.Flags().StringSlice("select", nil, "Current selection as category=option_id (repeatable)")
	optionsCmd.Flags().Bool("notes", false, "Show age, safety, intensity and progression notes")
	_ = optionsCmd.MarkFlagRequired("age")
}

// parseSelections turns category=id pairs into a selection set, applying
// the same single-select rules as the setup screen.
func parseSelections(pairs []string) (fitness.SelectionSet, error) {
	var sel fitness.SelectionSet
	for _, p := range pairs {
		cat, id, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return sel, fmt.Errorf("invalid --select %q: want category=option_id", p)
		}
		c, err := fitness.ParseCategory(cat)
		if err != nil {
			return sel, err
		}
		if err := sel.Toggle(c, id); err != nil {
			return sel, err
		}
	}
	return sel, nil
}

func printCatalog(c *fitness.Catalog, sel fitness.SelectionSet, notes bool) {
	for _, cat := range fitness.Categories {
		fmt.Println(cat.Label())
		fmt.Println(strings.Repeat("─", 40))
		opts := c.Options(cat)
		if len(opts) == 0 {
			fmt.Println("  (none)")
		}
		for _, o := range opts {
			mark := " "
			if sel.Has(cat, o.ID) {
				mark = "*"
			}
			fmt.Printf(" %s %-24s %s\n", mark, o.ID, o.Name)
			if note := o.Note(); notes && note != "" {
				fmt.Printf("     %s: %s\n", o.NoteLabel(), note)
			}
		}
		fmt.Println()
	}
}
