package cmd

import (
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"touchkeys/config"
	"touchkeys/debug"
)

var (
	configPath string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "touchkeys",
	Short: "Play notes on a multi-touch surface",
	Long: `touchkeys reads a Linux multi-touch device, maps every finger to a note
region and plays the notes over MIDI.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/touchkeys/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// enableFileLog turns on the debug log file when --debug is set
func enableFileLog(cfg *config.Config) error {
	if !debugLog {
		return nil
	}
	return debug.Enable(cfg.LogPath())
}
