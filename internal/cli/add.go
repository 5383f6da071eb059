package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo at the top of the list",
		Long: `Add a new pending todo. Arguments are joined with spaces.

Blank text adds nothing and is not an error.

Example:
  todos add Buy milk`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootOpts, strings.Join(args, " "))
		},
	}
}

func runAdd(cmd *cobra.Command, rootOpts *RootOptions, text string) error {
	sess, err := openSession(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter := newFormatter(cmd, rootOpts)

	item, ok := sess.todos.Add(cmd.Context(), text)
	if !ok {
		formatter.VerboseLog("ignored blank input %q", text)
		return formatter.Success(AddResult{Added: false})
	}
	return formatter.Success(AddResult{Added: true, Item: &item})
}
