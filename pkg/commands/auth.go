package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/auth"
	"tableflip.dev/tempo/pkg/runner/account"
	"tableflip.dev/tempo/pkg/store"
)

func addAuth(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Link or unlink the calendar account",
		Example: `
tempo auth login
tempo auth status
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAuthLogin(cmd)
	addAuthLogout(cmd)
	addAuthStatus(cmd)

	topLevel.AddCommand(cmd)
}

func addAuthLogin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Connect the calendar account through OAuth",
		Example: `
tempo auth login
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := account.Login{
				Flow:    auth.NewFlow(cfg.GoogleClientID, cfg.GoogleClientSecret),
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addAuthLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Disconnect the calendar account",
		Example: `
tempo auth logout
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := account.Logout{Service: svc}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addAuthStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an account is linked",
		Example: `
tempo auth status
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := account.Status{Service: svc}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
