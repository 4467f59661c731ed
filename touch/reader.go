package touch

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/holoplot/go-evdev"

	"touchkeys/debug"
)

// EventReader is anything that yields one raw input event per call, blocking
// until one is available. *evdev.InputDevice satisfies it.
type EventReader interface {
	ReadOne() (*evdev.InputEvent, error)
}

// Events turns r into a lazy event sequence. Read errors are logged and the
// read is retried immediately; the sequence ends when r is closed, hits EOF
// or the device is unplugged.
func Events(r EventReader) iter.Seq[evdev.InputEvent] {
	return func(yield func(evdev.InputEvent) bool) {
		for {
			ev, err := r.ReadOne()
			if err != nil {
				if isEnd(err) {
					return
				}
				debug.Warn("touch", "read error: %v", err)
				continue
			}
			if !yield(*ev) {
				return
			}
		}
	}
}

func isEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.ENODEV)
}

// Device is an opened, grabbed evdev touch surface
type Device struct {
	path string
	dev  *evdev.InputDevice
}

// Open opens the evdev node at path and grabs it for exclusive input.
func Open(path string) (*Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s: %w", path, err)
	}
	if err := dev.Grab(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("grab %s: %w", path, err)
	}
	debug.Log("touch", "opened and grabbed %s", path)
	return &Device{path: path, dev: dev}, nil
}

// Path returns the device node path
func (d *Device) Path() string {
	return d.path
}

// Name returns the kernel device name, or the path if it can't be read
func (d *Device) Name() string {
	name, err := d.dev.Name()
	if err != nil {
		return d.path
	}
	return name
}

// Size returns the touch surface extent from the multi-touch axis ranges.
// ok is false if the device doesn't report them.
func (d *Device) Size() (width, height int32, ok bool) {
	infos, err := d.dev.AbsInfos()
	if err != nil {
		debug.Warn("touch", "abs infos %s: %v", d.path, err)
		return 0, 0, false
	}
	x, okX := infos[evdev.ABS_MT_POSITION_X]
	y, okY := infos[evdev.ABS_MT_POSITION_Y]
	if !okX || !okY {
		return 0, 0, false
	}
	return x.Maximum - x.Minimum, y.Maximum - y.Minimum, true
}

// Events returns the device's raw event sequence. See Events.
func (d *Device) Events() iter.Seq[evdev.InputEvent] {
	return Events(d.dev)
}

// Close releases the grab and closes the node. A blocked read returns and
// the event sequence ends.
func (d *Device) Close() error {
	_ = d.dev.Ungrab()
	return d.dev.Close()
}

// DeviceInfo describes an input node found on the system
type DeviceInfo struct {
	Path       string
	Name       string
	MultiTouch bool
}

// ListDevices enumerates /dev/input/event* nodes and marks those that
// report multi-touch slots.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var out []DeviceInfo
	for _, p := range paths {
		info := DeviceInfo{Path: p.Path, Name: strings.TrimSpace(p.Name)}
		if dev, err := evdev.Open(p.Path); err == nil {
			for _, code := range dev.CapableEvents(evdev.EV_ABS) {
				if code == evdev.ABS_MT_SLOT {
					info.MultiTouch = true
					break
				}
			}
			dev.Close()
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
