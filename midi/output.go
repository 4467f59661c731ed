package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	// ErrPortScanTimeout means the driver did not answer a port query in time
	ErrPortScanTimeout = errors.New("midi port scan timed out")
	ErrPortNotFound    = errors.New("midi port not found")
)

// scanTimeout bounds port queries; some MIDI backends hang when the
// system MIDI service is wedged.
var scanTimeout = 3 * time.Second

// Output is an open MIDI output port
type Output struct {
	port drivers.Out
	send SendFunc
}

// OpenOutput opens the first output port whose name contains name
// (case insensitive). An empty name picks the first port.
func OpenOutput(name string) (*Output, error) {
	ports, err := outPorts()
	if err != nil {
		return nil, err
	}

	var port drivers.Out
	for _, p := range ports {
		if name == "" || strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			port = p
			break
		}
	}
	if port == nil {
		return nil, fmt.Errorf("midi output %q: %w", name, ErrPortNotFound)
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", port.String(), err)
	}
	return &Output{port: port, send: send}, nil
}

// OutputNames lists the available output ports
func OutputNames() ([]string, error) {
	ports, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names, nil
}

func (o *Output) Name() string {
	return o.port.String()
}

// Send writes msg to the port
func (o *Output) Send(msg gomidi.Message) error {
	return o.send(msg)
}

func (o *Output) Close() error {
	return o.port.Close()
}

// CloseDriver releases the registered MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}

func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(scanTimeout):
		return nil, ErrPortScanTimeout
	}
}
