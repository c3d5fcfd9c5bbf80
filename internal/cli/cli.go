// Package cli wires the terminal client's commands. The root command opens
// the interactive UI; subcommands are one-shot calls for scripts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rpggio/itemboard/internal/client"
	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/rpggio/itemboard/internal/tui"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// ErrBlankName is returned by add when the name is empty after trimming.
var ErrBlankName = errors.New("item name is required")

// reportedError marks an error whose ✖ line the command already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Run executes root and returns the process exit code. Errors the command
// did not report itself, such as usage errors, are printed as a ✖ line.
func Run(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		printFail(root.ErrOrStderr(), err.Error())
	}
	return 1
}

// Options configures the command tree.
type Options struct {
	APIURL  string
	Logger  *slog.Logger
	Timeout time.Duration
	// RunUI replaces the interactive UI; nil runs tui.Run.
	RunUI func(api tui.ItemsClient, apiURL string, logger *slog.Logger) error
}

type app struct {
	opts   Options
	apiURL string
}

// NewRootCommand builds the itemboard command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RunUI == nil {
		opts.RunUI = func(api tui.ItemsClient, apiURL string, logger *slog.Logger) error {
			return tui.Run(api, apiURL, logger)
		}
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "itemboard",
		Short:         "Browse and edit the item list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.opts.RunUI(a.api(), a.apiURL, a.opts.Logger)
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", opts.APIURL, "base URL of the item API")

	root.AddCommand(a.listCommand(), a.addCommand(), a.removeCommand(), a.healthCommand())
	return root
}

func (a *app) api() *client.API {
	return client.NewAPI(a.apiURL, nil)
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, a.opts.Timeout)
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			state, _ := client.NewState(a.apiURL).BeginLoad()
			items, err := a.api().ListItems(ctx)
			if err != nil {
				a.opts.Logger.Error("error fetching items", "error", err)
				state = state.LoadFailed()
				printFail(cmd.ErrOrStderr(), state.Error)
				return reportedError{err}
			}
			state = state.LoadSucceeded(items)
			printItems(cmd.OutOrStdout(), state.Items)
			return nil
		},
	}
}

func (a *app) addCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := client.NewState(a.apiURL).SetDraft(client.Draft{
				Name:        strings.Join(args, " "),
				Description: description,
			})
			state, ok := state.BeginAdd()
			if !ok {
				printFail(cmd.ErrOrStderr(), ErrBlankName.Error())
				return reportedError{ErrBlankName}
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			created, err := a.api().CreateItem(ctx, state.Draft)
			if err != nil {
				a.opts.Logger.Error("error adding item", "error", err)
				printFail(cmd.ErrOrStderr(), state.AddFailed().Error)
				return reportedError{err}
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("added #%d %s", created.ID, created.Name))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "item description")
	return cmd
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 0 {
				msg := "rm: not a valid id: " + args[0]
				printFail(cmd.ErrOrStderr(), msg)
				return reportedError{errors.New(msg)}
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := a.api().DeleteItem(ctx, id); err != nil {
				a.opts.Logger.Error("error deleting item", "error", err, "id", id)
				printFail(cmd.ErrOrStderr(), client.MessageDeleteFailed)
				return reportedError{err}
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("deleted #%d", id))
			return nil
		},
	}
}

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			health, err := a.api().Health(ctx)
			if err != nil {
				printFail(cmd.ErrOrStderr(), client.FetchFailedMessage(a.apiURL))
				return reportedError{err}
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("%s at %s", health.Status, health.Timestamp.Format(time.RFC3339)))
			return nil
		},
	}
}

func printItems(w io.Writer, items []item.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No items found."))
		return
	}
	for _, it := range items {
		line := fmt.Sprintf("#%-4d %s", it.ID, it.Name)
		if it.Description != nil && *it.Description != "" {
			line += dimStyle.Render(" · " + *it.Description)
		}
		fmt.Fprintln(w, line)
	}
}

func printOK(w io.Writer, msg string) { fmt.Fprintln(w, okStyle.Render("✔ "+msg)) }
func printFail(w io.Writer, msg string) { fmt.Fprintln(w, failStyle.Render("✖ "+msg)) }
