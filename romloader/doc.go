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

// Package romloader is used to specify the program image that is to be
// attached to the emulated machine.
//
// When the program is ready to be loaded into the emulator, the Load()
// function should be used. The Load() function handles loading of data from
// different sources. Currently local files and data over HTTP are supported.
// Compressed images (gzip, zip and 7z) are decompressed transparently.
//
// As well as the filename, the Loader type allows the load origin to be
// specified, if required.
//
// The simplest instance of the Loader type:
//
//	ld := romloader.Loader{
//		Filename: "roms/zexdoc.com",
//		Origin:   0x0100,
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the Origin field automatically according to
// the filename extension.
package romloader
