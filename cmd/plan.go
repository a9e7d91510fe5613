package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/export"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/planview"
)

var errNoSession = errors.New("no profile yet: run fitplan to create one")

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show, generate or export your workout plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the workout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")
		return withPlan(cmd.Context(), refresh, false, func(plan *fitness.WorkoutPlan) error {
			return planview.WriteText(os.Stdout, plan)
		})
	},
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the backend for a new workout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlan(cmd.Context(), false, true, func(plan *fitness.WorkoutPlan) error {
			fmt.Printf("Generated a %d-week plan (%s).\n", len(plan.PlanData.Weeks), plan.DateRange())
			return nil
		})
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the workout plan to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return withPlan(cmd.Context(), false, false, func(plan *fitness.WorkoutPlan) error {
			if out == "" {
				out = fmt.Sprintf("fitplan-%d.xlsx", plan.ID)
			}
			if err := export.SavePlanXLSX(out, plan); err != nil {
				return fmt.Errorf("export plan: %w", err)
			}
			fmt.Println("Plan exported to", out)
			return nil
		})
	},
}

func init() {
	planShowCmd.Flags().Bool("refresh", false, "Fetch from the backend even when a plan is stored")
	planExportCmd.Flags().StringP("out", "o", "", "Output file (default fitplan-<id>.xlsx)")

	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planExportCmd)
}

// withPlan resolves the session's plan the way the dashboard does: the
// stored copy first, then a GET, or a POST when generate is set. Fetched
// plans are saved.
func withPlan(ctx context.Context, refresh, generate bool, fn func(*fitness.WorkoutPlan) error) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	sess, err := d.sessions.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return errNoSession
	}

	if !refresh && !generate {
		plan, err := d.sessions.LoadPlan(ctx)
		if err != nil {
			log.WithError(err).Warn("load stored plan")
		}
		if plan != nil {
			return fn(plan)
		}
	}

	var plan *fitness.WorkoutPlan
	if generate {
		plan, err = d.client.GeneratePlan(ctx, sess.Token)
	} else {
		plan, err = d.client.GetPlan(ctx, sess.Token)
	}
	switch {
	case api.IsNotFound(err):
		return fmt.Errorf("you don't have a workout plan yet: run fitplan plan generate")
	case err != nil && generate:
		return errors.New(api.UserMessage(err, "Error generating workout plan"))
	case err != nil:
		return errors.New(api.UserMessage(err, "Failed to fetch workout plan"))
	}

	if err := d.sessions.SavePlan(ctx, plan); err != nil {
		log.WithError(err).Warn("save workout plan")
	}
	return fn(plan)
}
