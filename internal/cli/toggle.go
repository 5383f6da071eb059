package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between active and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, rootOpts, args[0])
		},
	}
}

func runToggle(cmd *cobra.Command, rootOpts *RootOptions, id string) error {
	sess, err := openSession(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer sess.Close()

	if !sess.todos.Toggle(cmd.Context(), id) {
		return notFound(id)
	}
	item, _ := sess.todos.Find(id)
	return newFormatter(cmd, rootOpts).Success(ToggleResult{Item: item})
}

// notFound reports an id that matched no todo.
func notFound(id string) *ExitError {
	return NewExitError(ExitFailure, CodeNotFound, fmt.Sprintf("no todo with id %q", id))
}
