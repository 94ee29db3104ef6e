package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
)

func newScoreCmd() *cobra.Command {
	var gender string

	cmd := &cobra.Command{
		Use:   "score <exercise> <value>",
		Short: "Score one fitness measurement on the 0-100 scale.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := service.ResolveGender(gender, "")
			if err != nil {
				return err
			}
			exercise, ok := scoring.ParseExerciseType(args[0])
			if !ok {
				return fmt.Errorf("unknown exercise %q", args[0])
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value %q: %w", args[1], err)
			}

			score, _ := scoring.ScoreMeasurement(models.FitnessMeasurement{ExerciseType: string(exercise), Value: value}, g)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %.1f / 100\n", exercise, formatFloat(value), scoring.UnitFor(exercise), score)
			return nil
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "male or female")
	_ = cmd.MarkFlagRequired("gender")
	return cmd
}

func newGradeCmd() *cobra.Command {
	var weighted bool

	cmd := &cobra.Command{
		Use:   "grade <percentage>",
		Short: "Convert a course percentage to its letter grade and grade points.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("percentage %q: %w", args[0], err)
			}
			letter := scoring.PercentageToLetterGrade(pct)
			fmt.Fprintf(cmd.OutOrStdout(), "%s%% -> %s (%.1f points)\n", formatFloat(pct), letter, scoring.LetterGradeToPoints(letter, weighted))
			return nil
		},
	}

	cmd.Flags().BoolVar(&weighted, "weighted", false, "apply the honors/AP bonus")
	return cmd
}
