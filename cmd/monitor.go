package cmd

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"touchkeys/debug"
	"touchkeys/theme"
	"touchkeys/tui"
)

func init() {
	monitorFlags.register(monitorCmd)
	rootCmd.AddCommand(monitorCmd)
}

var monitorFlags playFlags

var monitorCmd = &cobra.Command{
	Use:   "monitor [device...]",
	Short: "Play touches and show them in a terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := monitorFlags.apply(cmd, cfg); err != nil {
			return err
		}
		if err := enableFileLog(cfg); err != nil {
			return err
		}
		defer debug.Disable()

		th, err := theme.Load(cfg.Theme.Palette)
		if err != nil {
			return err
		}

		paths := cfg.Devices
		if len(args) > 0 {
			paths = args
		}
		s, err := startSession(cfg, paths)
		if err != nil {
			return err
		}

		m := tui.NewModel(s.manager, th)
		m.Control = s.control
		m.OnPanic = s.panic
		p := tea.NewProgram(m, tea.WithAltScreen())

		_, runErr := p.Run()
		return errors.Join(runErr, s.close())
	},
}
