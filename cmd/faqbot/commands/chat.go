package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/valentinpelus/faqbot/internal/processor"
	"github.com/valentinpelus/faqbot/pkg/types"
)

var (
	botColor    = color.New(color.FgCyan)
	metaColor   = color.New(color.FgHiBlack)
	followColor = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		resp := application.ChatProcessor.Chat(cmd.Context(), strings.Join(args, " "))
		printAnswer(cmd.OutOrStdout(), resp)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat; rate the last answer with /like or /dislike",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		return chatLoop(cmd.Context(), application.ChatProcessor, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func printAnswer(out io.Writer, resp types.ChatResponse) {
	botColor.Fprintln(out, resp.Answer)
	meta := fmt.Sprintf("[%s", resp.Method)
	if resp.Category != "" {
		meta += " " + resp.Category
	}
	if resp.Score > 0 {
		meta += fmt.Sprintf(" score=%d", resp.Score)
	}
	metaColor.Fprintln(out, meta+"]")
}

// chatLoop reads questions line by line until EOF or /quit
func chatLoop(ctx context.Context, proc *processor.ChatProcessor, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Ask a question. /like or /dislike rates the last answer, /quit exits.")

	var last *types.ChatResponse
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/like", "/dislike":
			if last == nil || !last.FeedbackEnabled {
				errColor.Fprintln(out, "Nothing to rate yet.")
				continue
			}
			resp, err := proc.Feedback(ctx, types.FeedbackRequest{
				TurnID:   last.TurnID,
				Feedback: strings.TrimPrefix(line, "/"),
			})
			if err != nil {
				errColor.Fprintln(out, err.Error())
				continue
			}
			if resp.FollowUp == "" {
				fmt.Fprintln(out, "Thanks for the feedback!")
			} else {
				followColor.Fprintln(out, "Let me try again:")
				botColor.Fprintln(out, resp.FollowUp)
			}
			if resp.MirrorStatus == processor.MirrorFailed {
				metaColor.Fprintln(out, "[feedback mirror unavailable]")
			}
			last = nil
			if resp.FollowUpTurnID != "" {
				last = &types.ChatResponse{TurnID: resp.FollowUpTurnID, Answer: resp.FollowUp, FeedbackEnabled: true}
			}
			continue
		}

		resp := proc.Chat(ctx, line)
		printAnswer(out, resp)
		last = &resp
	}
}
