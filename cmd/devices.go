package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchkeys/touch"
)

func init() {
	devicesCmd.Flags().BoolVar(&devicesAll, "all", false, "include devices without multi-touch")
	devicesCmd.Flags().BoolVar(&devicesSave, "save", false, "add the multi-touch devices to the config file")
	rootCmd.AddCommand(devicesCmd)
}

var (
	devicesAll  bool
	devicesSave bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List input devices",
	Long:  `Lists /dev/input/event* nodes. Multi-touch devices are marked with *.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := touch.ListDevices()
		if err != nil {
			return err
		}

		var found []string
		for _, info := range infos {
			mark := " "
			if info.MultiTouch {
				mark = "*"
				found = append(found, info.Path)
			} else if !devicesAll {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s\n", mark, info.Path, info.Name)
		}
		if len(found) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no multi-touch devices found (is the user in the input group?)")
			return nil
		}

		if !devicesSave {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, p := range found {
			cfg.AddDevice(p)
		}
		if configPath != "" {
			return cfg.SaveFile(configPath)
		}
		return cfg.Save()
	},
}
