package cmd

import (
	"errors"
	"fmt"

	"touchkeys/config"
	"touchkeys/debug"
	"touchkeys/instrument"
	"touchkeys/midi"
	"touchkeys/sound"
	"touchkeys/touch"
)

// session is the set of running workers and their outputs
type session struct {
	manager *instrument.Manager
	control *sound.Control
	output  *midi.Output
	players []*midi.Player
}

// startSession opens every device and starts a worker for it. Nothing is
// left running if any device fails to open.
func startSession(cfg *config.Config, paths []string) (*session, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input devices configured")
	}

	s := &session{
		manager: instrument.NewManager(),
		control: &sound.Control{},
	}

	if cfg.MIDI.Enabled {
		out, err := midi.OpenOutput(cfg.MIDI.Port)
		if err != nil {
			return nil, err
		}
		s.output = out
		debug.Log("midi", "output %s channel %d", out.Name(), cfg.MIDI.Channel)
	}

	var workers []*instrument.Worker
	for _, path := range paths {
		dev, err := touch.Open(path)
		if err != nil {
			for _, w := range workers {
				_ = w.Stop()
			}
			s.closeOutput()
			return nil, err
		}

		width, height, ok := dev.Size()
		if !ok {
			debug.Warn("touch", "%s reports no multi-touch axes", path)
		}
		layout, err := cfg.BuildLayout(width, height)
		if err != nil {
			_ = dev.Close()
			for _, w := range workers {
				_ = w.Stop()
			}
			s.closeOutput()
			return nil, fmt.Errorf("layout for %s: %w", path, err)
		}

		players := []sound.Player{sound.NewLogPlayer()}
		if len(workers) == 0 {
			// the control cell is monophonic, so only the first device drives it
			players = append(players, sound.NewControlPlayer(s.control))
		}
		if s.output != nil {
			p := midi.NewPlayer(s.output.Send, cfg.MIDI.Channel, cfg.MIDI.Velocity)
			s.players = append(s.players, p)
			players = append(players, p)
		}

		debug.Log("worker", "%s (%s) %dx%d, %d regions", path, dev.Name(), width, height, layout.Len())
		workers = append(workers, instrument.NewWorker(dev, layout, sound.Multi(players...)))
	}

	for _, w := range workers {
		s.manager.Add(w)
	}
	return s, nil
}

// panic sends note off for every held MIDI note
func (s *session) panic() {
	for _, p := range s.players {
		p.Panic()
	}
}

func (s *session) close() error {
	err := s.manager.StopAll()
	s.panic()
	s.closeOutput()
	return err
}

func (s *session) closeOutput() {
	if s.output == nil {
		return
	}
	if err := s.output.Close(); err != nil {
		debug.Warn("midi", "close output: %v", err)
	}
	midi.CloseDriver()
	s.output = nil
}
