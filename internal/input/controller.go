// Package input implements the two standard controllers behind the joypad
// ports at 0x4016 and 0x4017.
package input

import (
	"fmt"
	"strings"
)

// Button is a controller button mask, in the order the buttons are shifted
// out of the controller.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = [8]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	var names []string
	for i, name := range buttonNames {
		if b&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "+")
}

// Port addresses.
const (
	Port1 uint16 = 0x4016
	Port2 uint16 = 0x4017
)

// Reads return the upper bits of the last byte on the data bus, which is
// the high byte of the port address.
const openBus = 0x40

// Controller is one standard controller: eight buttons and a shift register
// loaded while the strobe is high.
type Controller struct {
	buttons Button
	shift   uint8
	strobe  bool
}

// NewController creates a controller with no buttons pressed.
func NewController() *Controller {
	return &Controller{}
}

// SetButton presses or releases a button.
func (c *Controller) SetButton(b Button, pressed bool) {
	if pressed {
		c.buttons |= b
	} else {
		c.buttons &^= b
	}
}

// SetButtons replaces the state of all buttons.
func (c *Controller) SetButtons(b Button) {
	c.buttons = b
}

// Buttons returns the buttons currently pressed.
func (c *Controller) Buttons() Button {
	return c.buttons
}

// IsPressed returns true if the button is pressed.
func (c *Controller) IsPressed(b Button) bool {
	return c.buttons&b != 0
}

func (c *Controller) setStrobe(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shift = uint8(c.buttons)
	}
}

// read shifts out the next button. While the strobe is high it keeps
// returning A. After eight reads it returns 1.
func (c *Controller) read() uint8 {
	if c.strobe {
		return uint8(c.buttons & ButtonA)
	}
	bit := c.shift & 1
	c.shift = c.shift>>1 | 0x80
	return bit
}

// Reset releases every button and clears the shift register.
func (c *Controller) Reset() {
	*c = Controller{}
}

// Ports is the bus device for both controller ports. A write to 0x4016
// sets the strobe of both controllers; writes to 0x4017 belong to the
// audio frame counter and are declined.
type Ports struct {
	controllers [2]*Controller
}

// NewPorts creates the ports with two controllers connected.
func NewPorts() *Ports {
	return &Ports{controllers: [2]*Controller{NewController(), NewController()}}
}

// Controller returns the controller in port 0 or 1.
func (p *Ports) Controller(port int) *Controller {
	return p.controllers[port&1]
}

// Read implements bus.Reader.
func (p *Ports) Read(addr uint16) (uint8, bool) {
	switch addr {
	case Port1:
		return openBus | p.controllers[0].read(), true
	case Port2:
		return openBus | p.controllers[1].read(), true
	}
	return 0, false
}

// Write implements bus.Writer.
func (p *Ports) Write(addr uint16, value uint8) bool {
	if addr != Port1 {
		return false
	}
	for _, c := range p.controllers {
		c.setStrobe(value)
	}
	return true
}

// Reset resets both controllers.
func (p *Ports) Reset() {
	for _, c := range p.controllers {
		c.Reset()
	}
}

func (p *Ports) String() string {
	return fmt.Sprintf("1P=%s 2P=%s", p.controllers[0].buttons, p.controllers[1].buttons)
}
