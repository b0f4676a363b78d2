package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	suggestInput   string
	suggestMessage string
	suggestAPIKey  string
	suggestChat    bool
	suggestMax     int
	suggestVerbose bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the writing assistant about a résumé",
	Long: `Sends a résumé and a request to the Gemini-backed assistant.

By default the assistant returns per-section suggestions. With --chat the free-form reply is streamed instead.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestInput, "in", "i", "", "Path to résumé JSON (\"-\" for stdin, empty for a blank résumé)")
	suggestCmd.Flags().StringVarP(&suggestMessage, "message", "m", "", "What to ask the assistant")
	suggestCmd.Flags().StringVar(&suggestAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	suggestCmd.Flags().BoolVar(&suggestChat, "chat", false, "Stream a free-form reply instead of suggestions")
	suggestCmd.Flags().IntVar(&suggestMax, "max", assistant.DefaultMaxSuggestions, "Maximum number of suggestions")
	suggestCmd.Flags().BoolVarP(&suggestVerbose, "verbose", "v", false, "Print prompts and raw responses")
	_ = suggestCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	apiKey := firstNonEmpty(suggestAPIKey, os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	content := types.NewContent()
	if suggestInput != "" {
		var err error
		if content, err = readContent(cmd, suggestInput); err != nil {
			return err
		}
	}

	ctx := context.Background()
	llmConfig := llm.LoadConfig()
	instruction, err := assistant.SystemInstruction()
	if err != nil {
		return err
	}
	llmConfig.SystemInstruction = instruction

	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	svc := assistant.New(client, assistant.WithMaxSuggestions(suggestMax), assistant.WithVerbose(suggestVerbose))
	out := cmd.OutOrStdout()

	if suggestChat {
		err := svc.Chat(ctx, content, suggestMessage, func(chunk string) error {
			_, err := io.WriteString(out, chunk)
			return err
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
		return nil
	}

	suggestions, err := svc.Suggest(ctx, content, suggestMessage)
	if err != nil {
		return err
	}
	observability.NewPrinter(out).PrintSuggestions(suggestions)
	return nil
}
