package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/llm"
)

func (a *app) keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored AI API key",
		Long: `Manage the stored AI API key.

Keys starting with "sk-" are sent to OpenAI, every other key to Google Gemini.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key>",
			Short: "Store an API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				credential := strings.TrimSpace(args[0])
				store, cleanup, err := a.openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()

				if err := store.Credentials().Set(cmd.Context(), credential); err != nil {
					return fmt.Errorf("failed to store key: %w", err)
				}
				provider := llm.ClassifyCredential(credential)
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Stored %s key %s", provider, llm.MaskCredential(credential))))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored API key (masked)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, cleanup, err := a.openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()

				credential, err := store.Credentials().Get(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read key: %w", err)
				}
				if credential == "" {
					outln(cmd, cli.FormatWarning(llm.MissingCredentialMessage))
					return nil
				}
				outf(cmd, "%s (%s)\n", llm.MaskCredential(credential), llm.ClassifyCredential(credential))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Delete the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, cleanup, err := a.openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()

				if err := store.Credentials().Remove(cmd.Context()); err != nil {
					return fmt.Errorf("failed to remove key: %w", err)
				}
				outln(cmd, cli.FormatSuccess("API key removed"))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Choose the Gemini model",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <name>",
			Short: "Set the preferred Gemini model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, cleanup, err := a.openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()

				if err := store.Models().Set(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to set model: %w", err)
				}
				outln(cmd, cli.FormatSuccess("Model set to "+args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the preferred Gemini model",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, cleanup, err := a.openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer cleanup()

				name, err := store.Models().Get(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read model: %w", err)
				}
				if name == "" {
					outf(cmd, "%s (default)\n", llm.DefaultGeminiModel)
					return nil
				}
				outln(cmd, name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the supported Gemini models",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				for _, name := range llm.GeminiModels {
					outln(cmd, name)
				}
				outln(cmd, cli.StyleInfo(fmt.Sprintf("OpenAI keys always use %s.", llm.OpenAIModel)))
			},
		},
	)
	return cmd
}
