package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/music-catalog/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Start the interactive terminal UI",
		Annotations: map[string]string{annotationSetup: setupTUI},
		Args:        cobra.NoArgs,
		RunE:        a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	events := tui.NewEvents(64)
	lib, err := a.open(events.Send)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), lib, events, a.verbose)
}
