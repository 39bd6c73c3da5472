package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/events"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   "Work with calendar events",
		Example: `
tempo event add standup --at=09:30
tempo event get --week
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventGet(cmd)
	addEventRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	do := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an event",
		Example: `
tempo event add dentist --on="2026-9-3" --at=14:30 --end=15:15 --color=red
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			eo.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			day, err := do.GetOn()
			if err != nil {
				return err
			}
			start, err := eo.GetStart(day)
			if err != nil {
				return err
			}
			end, err := eo.GetEnd(day, start)
			if err != nil {
				return err
			}
			s := events.Add{
				Title:       eo.Title,
				On:          start,
				End:         end,
				Description: eo.Description,
				Color:       eo.Color,
				Service:     svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	options.AddEventArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}

func addEventGet(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	do := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List events for a day or week",
		Example: `
tempo event get
tempo event get --on="2/28" --week
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			day, err := do.GetOn()
			if err != nil {
				return err
			}
			s := events.Get{
				ShowID:  io.ShowID,
				On:      day,
				Week:    eo.Week,
				Service: svc,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, do)
	options.AddWeekArg(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an event",
		Example: `
tempo event rm <event id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event id")
			}
			io.ID = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := events.Remove{
				ID:      io.ID,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
