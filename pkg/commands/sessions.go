package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/sessions"
)

func addSessions(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	window := ""

	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "List recorded focus sessions",
		Example: `
tempo sessions
tempo sessions --window 3d
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := sessions.Get{
				ShowID:  io.ShowID,
				Window:  window,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&window, "window", "",
		`How far back to look, example: --window="1w", --window="3d6h", or --window="1mo".`)
	topLevel.AddCommand(cmd)
}
