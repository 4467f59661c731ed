package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"touchkeys/areas"
	"touchkeys/midi"
	"touchkeys/touch"
)

func init() {
	midiTestCmd.Flags().StringVar(&midiTestPort, "port", "", "output port name (default: first port)")
	midiTestCmd.Flags().IntVar(&midiTestNote, "note", 60, "root note of the test arpeggio")
	midiCmd.AddCommand(midiListCmd, midiTestCmd)
	rootCmd.AddCommand(midiCmd)
}

var (
	midiTestPort string
	midiTestNote int
)

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "MIDI output helpers",
}

var midiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List MIDI output ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "(waiting up to 3 seconds...)")
		names, err := midi.OutputNames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no MIDI outputs")
		}
		for i, n := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s\n", i, n)
		}
		return nil
	},
}

var midiTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Play a short arpeggio through the player",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := midi.OpenOutput(midiTestPort)
		if err != nil {
			return err
		}
		defer midi.CloseDriver()
		defer out.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "playing on %s\n", out.Name())
		p := midi.NewPlayer(out.Send, cfg.MIDI.Channel, cfg.MIDI.Velocity)
		for _, step := range []int{0, 4, 7, 12} {
			note := midiTestNote + step
			var events touch.Slots[areas.NoteEvent]
			events[0] = areas.NoteOn(note, areas.Frequency(note))
			p.Play(events)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", areas.NoteName(note))
			time.Sleep(250 * time.Millisecond)
		}
		p.Panic()
		return nil
	},
}
