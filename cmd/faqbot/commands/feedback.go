package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/valentinpelus/faqbot/pkg/types"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the feedback ledger as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		doc, err := application.ChatProcessor.Export()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}

		if exportOut == "" || exportOut == "-" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported feedback to %s\n", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge an exported feedback ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		application, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		n, err := application.ChatProcessor.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d sessions\n", n)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feedback statistics and insights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		printAnalysis(cmd.OutOrStdout(), application.ChatProcessor.Analysis())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

func printAnalysis(out io.Writer, a types.FeedbackAnalysis) {
	heading := color.New(color.Bold)
	s := a.Stats

	heading.Fprintln(out, "Feedback")
	fmt.Fprintf(out, "  total:               %d\n", s.TotalFeedback)
	fmt.Fprintf(out, "  likes / dislikes:    %d / %d\n", s.Likes, s.Dislikes)
	fmt.Fprintf(out, "  satisfaction:        %.1f%%\n", s.SatisfactionRate)
	fmt.Fprintf(out, "  unique questions:    %d\n", s.UniqueQuestions)
	fmt.Fprintf(out, "  improved responses:  %d\n", s.ImprovedResponses)
	fmt.Fprintf(out, "  blocked answers:     %d\n", s.BlockedAnswers)

	printSummaries(out, heading, "Most liked", a.TopLiked)
	printSummaries(out, heading, "Most disliked", a.TopDisliked)

	if len(a.Insights) > 0 {
		heading.Fprintln(out, "Insights")
		for _, insight := range a.Insights {
			fmt.Fprintf(out, "  - %s\n", insight)
		}
	}
}

func printSummaries(out io.Writer, heading *color.Color, title string, list []types.QuestionSummary) {
	if len(list) == 0 {
		return
	}
	heading.Fprintln(out, title)
	for _, q := range list {
		fmt.Fprintf(out, "  %-50s +%d -%d\n", q.Question, q.Likes, q.Dislikes)
	}
}
