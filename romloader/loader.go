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

package romloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
)

// CPMOrigin is the load address of CP/M transient programs. Files with the
// .com extension are loaded here.
const CPMOrigin = 0x0100

// Loader is used to specify the program image to attach to the emulated
// machine. It also permits the caller to specify the load origin (if
// necessary, the file extension is a good guide).
type Loader struct {
	// filename of program image to load
	Filename string

	// address at which the first byte of the image is placed
	Origin uint16

	// expected fingerprint of the loaded image. empty string indicates that
	// the fingerprint is unknown and need not be validated. after a load
	// operation the value will be the fingerprint of the loaded data
	//
	// in the case of compressed images the fingerprint is of the
	// decompressed data, not the archive file
	Hash string

	// copy of the loaded data
	Data []byte

	// origin was derived from the file extension rather than given
	// explicitly. a compressed archive may refine it on Load() once the
	// inner filename is known
	auto bool
}

// compression suffixes recognised by the loader.
const (
	extGzip     = ".gz"
	extZip      = ".zip"
	extSevenZip = ".7z"
)

// FileExtensions is the list of file extensions that are recognised by the
// romloader package.
var FileExtensions = [...]string{".bin", ".rom", ".com", extGzip, extZip, extSevenZip}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The origin argument will be used to set the Origin field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field: .com images load at CPMOrigin and
// everything else at address zero. Compression suffixes are stripped before
// the extension is considered, so "prog.com.gz" loads at CPMOrigin.
//
// An explicit origin is parsed as an integer. The usual prefixes are
// understood, so "0x8000", "0o200" and plain decimal all work.
func NewLoader(filename string, origin string) (Loader, error) {
	ld := Loader{
		Filename: filename,
	}

	origin = strings.TrimSpace(strings.ToUpper(origin))
	if origin != "AUTO" && origin != "" {
		v, err := strconv.ParseUint(origin, 0, 16)
		if err != nil {
			return Loader{}, fmt.Errorf("romloader: unrecognised origin (%s)", origin)
		}
		ld.Origin = uint16(v)
	} else {
		ld.auto = true
		ld.Origin = originForFile(stripCompression(filename))
	}

	return ld, nil
}

// ShortName returns a shortened version of the Loader filename, with path,
// compression suffix and extension removed.
func (ld Loader) ShortName() string {
	sn := filepath.Base(stripCompression(ld.Filename))
	return strings.TrimSuffix(sn, filepath.Ext(sn))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the program image and make it available through the Data field.
// Loader filenames with a valid schema will use that method to load the
// data. Currently supported schemes are HTTP and local files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	var data []byte

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return fmt.Errorf("romloader: %w", err)
		}
		defer resp.Body.Close()

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("romloader: %w", err)
		}

	case "file":
		fallthrough
	case "":
		data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return fmt.Errorf("romloader: %w", err)
		}

	default:
		return fmt.Errorf("romloader: unsupported URL scheme (%s)", scheme)
	}

	data, inner, err := decompress(ld.Filename, data)
	if err != nil {
		return fmt.Errorf("romloader: %w", err)
	}

	// an archive knows the name of the file it contains. that name is a
	// better guide to the load origin than the archive's own
	if ld.auto && inner != "" {
		ld.Origin = originForFile(inner)
	}

	if len(data) == 0 {
		return fmt.Errorf("romloader: %s is empty", ld.Filename)
	}
	if int(ld.Origin)+len(data) > 0x10000 {
		return fmt.Errorf("romloader: image does not fit in 64k memory (%d bytes at %#04x)", len(data), ld.Origin)
	}

	hash := fmt.Sprintf("%016x", xxhash.Sum64(data))

	if ld.Hash != "" && ld.Hash != hash {
		return fmt.Errorf("romloader: unexpected fingerprint value")
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

// decompress data according to the compression suffix of filename. data is
// returned unaltered if the suffix is not a recognised compression type. the
// second return value is the name of the file inside the archive, for
// archive formats that record one.
func decompress(filename string, data []byte) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case extGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		defer r.Close()

		d, err := io.ReadAll(r)
		if err != nil {
			return nil, "", err
		}
		return d, stripCompression(filename), nil

	case extZip:
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, "", err
		}
		if len(r.File) == 0 {
			return nil, "", fmt.Errorf("empty archive (%s)", filename)
		}

		// the first file in the archive is the program image
		f, err := r.File[0].Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()

		d, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return d, r.File[0].Name, nil

	case extSevenZip:
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, "", err
		}
		if len(r.File) == 0 {
			return nil, "", fmt.Errorf("empty archive (%s)", filename)
		}

		f, err := r.File[0].Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()

		d, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return d, r.File[0].Name, nil
	}

	return data, "", nil
}

// stripCompression removes a recognised compression suffix from filename.
func stripCompression(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case extGzip, extZip, extSevenZip:
		return strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	return filename
}

// originForFile returns the load origin suggested by the file extension.
func originForFile(filename string) uint16 {
	if strings.ToLower(filepath.Ext(filename)) == ".com" {
		return CPMOrigin
	}
	return 0
}
