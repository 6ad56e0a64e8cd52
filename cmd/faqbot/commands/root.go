package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/valentinpelus/faqbot/internal/app"
)

var (
	noColor bool
	offline bool
)

var rootCmd = &cobra.Command{
	Use:   "faqbot",
	Short: "University FAQ chatbot that learns from like/dislike feedback",
	Long: `faqbot answers prospective-student questions from a small FAQ knowledge base,
records like/dislike feedback, and uses it to replace disliked answers.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip the remote chat service and the feedback mirror")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newApp(ctx context.Context) (*app.App, error) {
	var opts []app.Option
	if offline {
		opts = append(opts, app.Offline())
	}
	if noColor || color.NoColor {
		opts = append(opts, app.NoColor())
	}
	return app.New(ctx, opts...)
}
