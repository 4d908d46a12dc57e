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

// Package hardware is the base package for the reference machine: a Z80
// with a flat 64k of RAM, an open IO port space and an optional CP/M
// console layer. It and its sub-packages contain everything required for a
// headless emulation.
//
// The Machine type is the root of the emulation and contains references to
// all the sub-systems. From here the emulation can be started to run
// continuously (with an optional callback to check for continuation), or it
// can be stepped instruction by instruction or T-state by T-state.
package hardware
