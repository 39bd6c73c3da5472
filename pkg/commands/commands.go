package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tempo",
		Short: base.Wrap80("A weekly calendar, focus timer, and todo list for the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addClock(topLevel)
	addEvent(topLevel)
	addTodo(topLevel)
	addSessions(topLevel)
	addAuth(topLevel)
	addVersion(topLevel)
}
