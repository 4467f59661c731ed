package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"touchkeys/config"
	"touchkeys/debug"
	"touchkeys/instrument"
)

// flags shared by run and monitor
type playFlags struct {
	midiPort    string
	channel     int
	regionWidth int32
	startNote   int
}

func (f *playFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.midiPort, "midi-port", "", "send notes to the MIDI output whose name contains this")
	cmd.Flags().IntVar(&f.channel, "channel", -1, "MIDI channel 1-16")
	cmd.Flags().Int32Var(&f.regionWidth, "region-width", 0, "stripe width in device units")
	cmd.Flags().IntVar(&f.startNote, "start-note", -1, "MIDI note of the leftmost stripe")
}

// apply overrides config values with the flags that were set
func (f *playFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("midi-port") {
		cfg.MIDI.Enabled = true
		cfg.MIDI.Port = f.midiPort
	}
	if cmd.Flags().Changed("channel") {
		if f.channel < 1 || f.channel > 16 {
			return fmt.Errorf("channel must be 1-16, got %d", f.channel)
		}
		cfg.MIDI.Channel = uint8(f.channel - 1)
	}
	if cmd.Flags().Changed("region-width") {
		cfg.Layout.RegionWidth = f.regionWidth
	}
	if cmd.Flags().Changed("start-note") {
		cfg.Layout.StartNote = f.startNote
	}
	return cfg.Validate()
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "console log level (debug, info, warn)")
	rootCmd.AddCommand(runCmd)
}

var (
	runFlags    playFlags
	runLogLevel string
)

var runCmd = &cobra.Command{
	Use:   "run [device...]",
	Short: "Play touches until interrupted",
	Long: `Opens the given evdev devices (or the configured ones), grabs them and
plays every touch. Transitions are logged to the console.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := runFlags.apply(cmd, cfg); err != nil {
			return err
		}
		if debugLog {
			runLogLevel = "debug"
		}
		if err := debug.EnableConsole(runLogLevel); err != nil {
			return err
		}
		defer debug.Disable()

		paths := cfg.Devices
		if len(args) > 0 {
			paths = args
		}
		return play(cmd.Context(), cfg, paths)
	},
}

func play(ctx context.Context, cfg *config.Config, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := startSession(cfg, paths)
	if err != nil {
		return err
	}
	debug.Named("worker").Infow("playing", "devices", paths, "midi", cfg.MIDI.Enabled)

	ended := make(chan error, 1)
	go func() {
		ended <- s.manager.Wait()
	}()

	select {
	case <-ctx.Done():
		return s.close()
	case err := <-ended:
		closeErr := s.close()
		if errors.Is(err, instrument.ErrInputEnded) {
			return fmt.Errorf("all devices went away: %w", err)
		}
		return errors.Join(err, closeErr)
	}
}
