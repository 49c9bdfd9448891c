package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Chat with the ingested documents",
	Long: `Ask the chatbot a question.

With arguments, prints a single reply. Without arguments, opens the
interactive chat UI when stdin is a terminal, or reads one message per
line otherwise. Type "exit" or "quit" to leave the line mode.

Examples:
  docchat chat --load ./handbook "vacation policy"
  docchat chat --load ./notes`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "use the line mode even on a terminal")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if len(args) > 0 {
		resp := chatService.Reply(cmd.Context(), strings.Join(args, " "))
		return writeReply(cmd.OutOrStdout(), resp)
	}

	if !chatPlain && isTerminal(cmd.InOrStdin()) {
		return runChatTUI(cmd.Context())
	}
	return runChatREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// writeReply prints a chat reply, in red when it is an error.
func writeReply(w io.Writer, resp domain.Response) error {
	if !resp.OK() {
		return responseError{msg: resp.Message}
	}
	fmt.Fprintln(w, resp.Message)
	return nil
}

func runChatREPL(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Fprint(out, labelText("> "))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			fmt.Fprint(out, labelText("> "))
			continue
		case "exit", "quit":
			return nil
		}

		resp := chatService.Reply(ctx, line)
		if resp.OK() {
			fmt.Fprintln(out, resp.Message)
		} else {
			printError(out, errors.New(resp.Message))
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, labelText("> "))

		if err := ctx.Err(); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func runChatTUI(ctx context.Context) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	model, err := tui.NewChat(&tui.Ports{Chat: chatService, Search: searchService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	model.WithContext(ctx)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
