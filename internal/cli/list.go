package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/todos/internal/todo"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Filter string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show todos, newest first",
		Long: `Show the todos matching a filter, newest first, followed by counts
over the whole list.

Filters:
  all     every todo (default)
  active  todos not yet done
  done    completed todos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", string(todo.FilterAll), "filter (all|active|done)")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	filter, err := todo.ParseFilter(opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, CodeInvalidFilter, "invalid filter", err)
	}

	sess, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.todos.SetFilter(filter); err != nil {
		return WrapExitError(ExitCommandError, CodeInvalidFilter, "invalid filter", err)
	}

	return newFormatter(cmd, opts.RootOptions).Success(ListResult{
		Filter: sess.todos.Filter(),
		Items:  sess.todos.VisibleItems(),
		Stats:  sess.todos.Stats(),
	})
}
