package main

import (
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/tui"
)

func (a *app) askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the AI assistant a question",
		Long: `Ask the AI assistant a question.

With --context the assistant also sees your salary, budgets and recent
transactions.

Examples:
  spendwise ask "How do I start an emergency fund?"
  spendwise ask --context "Can I afford a weekend trip this month?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runAsk,
	}

	cmd.Flags().BoolP("context", "c", false, "include your budgeting data in the prompt")
	addOverrideFlags(cmd)
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(cmd.Context(), "Request")
	defer stop()

	withContext, _ := cmd.Flags().GetBool("context")
	text := strings.Join(args, " ")

	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway, err := a.newGateway(store)
	if err != nil {
		return err
	}

	opts := callOptions(cmd)
	var reply string
	if withContext {
		snapshot, loadErr := store.Data().Load(ctx)
		if loadErr != nil {
			return loadErr
		}
		reply = waitWithSpinner(cmd.ErrOrStderr(), "Thinking...", func() string {
			return gateway.CompleteWithContext(ctx, snapshot, text, opts...)
		})
	} else {
		reply = waitWithSpinner(cmd.ErrOrStderr(), "Thinking...", func() string {
			return gateway.Complete(ctx, text, opts...)
		})
	}

	outln(cmd, cli.RenderReply(reply))
	return nil
}

func (a *app) insightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Get three quick tips about your spending",
		Args:  cobra.NoArgs,
		RunE:  a.runInsight,
	}
	addOverrideFlags(cmd)
	return cmd
}

func (a *app) runInsight(cmd *cobra.Command, _ []string) error {
	ctx, stop := cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(cmd.Context(), "Insight")
	defer stop()

	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway, err := a.newGateway(store)
	if err != nil {
		return err
	}

	snapshot, err := store.Data().Load(ctx)
	if err != nil {
		return err
	}

	reply := waitWithSpinner(cmd.ErrOrStderr(), "Reviewing your budget...", func() string {
		return gateway.Insight(ctx, snapshot, callOptions(cmd)...)
	})

	outln(cmd, cli.FormatTitle("Insights"))
	outln(cmd, cli.RenderReply(reply))
	return nil
}

func (a *app) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat with the AI assistant",
		Long: `Open an interactive chat with the AI assistant.

Press ctrl+t to toggle whether your budgeting data is sent as context,
and esc to leave.`,
		Args: cobra.NoArgs,
		RunE: a.runChat,
	}
	cmd.Flags().Bool("no-context", false, "start with budget context turned off")
	addOverrideFlags(cmd)
	return cmd
}

func (a *app) runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	noContext, _ := cmd.Flags().GetBool("no-context")

	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	gateway, err := a.newGateway(store)
	if err != nil {
		return err
	}

	return tui.Run(ctx,
		tui.WithAssistant(gateway),
		tui.WithData(store.Data()),
		tui.WithCallOptions(callOptions(cmd)...),
		tui.WithContextEnabled(!noContext),
	)
}

// waitWithSpinner runs fn while a spinner animates on w.
func waitWithSpinner(w io.Writer, description string, fn func() string) string {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
	)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result := fn()
	close(stop)
	<-done
	_ = bar.Finish()
	return result
}
