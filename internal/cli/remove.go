package cli

import (
	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, rootOpts, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, rootOpts *RootOptions, id string) error {
	sess, err := openSession(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer sess.Close()

	item, ok := sess.todos.Find(id)
	if !ok || !sess.todos.Remove(cmd.Context(), id) {
		return notFound(id)
	}
	return newFormatter(cmd, rootOpts).Success(RemoveResult{Item: item})
}
