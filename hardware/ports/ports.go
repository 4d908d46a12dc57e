// This file is part of GopherZ80.
//
// GopherZ80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherZ80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherZ80.  If not, see <https://www.gnu.org/licenses/>.

// Package ports implements the IO port space of the reference machine as a
// registry of handler functions. Devices claim individual ports by attaching
// an input handler, an output handler or both. Ports with no handler behave
// like an open bus: reads return 0xff and writes go nowhere.
//
// Port decoding uses the low byte of the address bus, the way most Z80
// peripherals were wired. Handlers do receive the full 16-bit address
// however, for devices that scan the high byte. Keyboard half-rows being
// the obvious example.
package ports

// InputHandler supplies the byte read from a port.
type InputHandler func(port uint16) uint8

// OutputHandler accepts the byte written to a port.
type OutputHandler func(port uint16, data uint8)

// Ports is the IO port space of the reference machine. It implements the
// bus.IO interface.
type Ports struct {
	input  [256]InputHandler
	output [256]OutputHandler
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts() *Ports {
	return &Ports{}
}

// AttachInput claims a port for reading. A nil handler releases the port.
func (p *Ports) AttachInput(port uint8, h InputHandler) {
	p.input[port] = h
}

// AttachOutput claims a port for writing. A nil handler releases the port.
func (p *Ports) AttachOutput(port uint8, h OutputHandler) {
	p.output[port] = h
}

// DetachAll releases every port.
func (p *Ports) DetachAll() {
	p.input = [256]InputHandler{}
	p.output = [256]OutputHandler{}
}

// Read implements the bus.IO interface.
func (p *Ports) Read(port uint16) uint8 {
	if h := p.input[port&0xff]; h != nil {
		return h(port)
	}
	return 0xff
}

// Write implements the bus.IO interface.
func (p *Ports) Write(port uint16, data uint8) {
	if h := p.output[port&0xff]; h != nil {
		h(port, data)
	}
}
