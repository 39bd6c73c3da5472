package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/ui"
)

func addClock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "open the full-screen clock",
		Example: `
tempo clock
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc, Zen: true}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
