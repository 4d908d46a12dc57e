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

package romloader_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherz80/romloader"
	"github.com/jetsetilly/gopherz80/test"
)

// a short program image for loading tests. the content is immaterial.
var testProgram = []byte{0x3e, 0x08, 0x06, 0x02, 0x80, 0x76}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestRawImage(t *testing.T) {
	fn := writeTestFile(t, "prog.bin", testProgram)

	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.Origin, 0x0000)
	test.Equate(t, ld.HasLoaded(), false)

	err = ld.Load()
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.HasLoaded(), true)
	test.Equate(t, bytes.Equal(ld.Data, testProgram), true)
	test.Equate(t, ld.ShortName(), "prog")

	// fingerprint is a 64bit hash rendered as hex
	test.Equate(t, len(ld.Hash), 16)
}

func TestOriginFromExtension(t *testing.T) {
	fn := writeTestFile(t, "prog.com", testProgram)

	ld, err := romloader.NewLoader(fn, "AUTO")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.Origin, romloader.CPMOrigin)

	// explicit origin overrides the extension
	ld, err = romloader.NewLoader(fn, "0x8000")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.Origin, 0x8000)

	// unparseable origin
	_, err = romloader.NewLoader(fn, "stack")
	test.ExpectedFailure(t, err)
}

func TestFingerprint(t *testing.T) {
	fn := writeTestFile(t, "prog.bin", testProgram)

	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld.Load())

	// the fingerprint is deterministic
	ld2, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld2.Load())
	test.Equate(t, ld.Hash, ld2.Hash)

	// a correct expected fingerprint passes validation
	ld3, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	ld3.Hash = ld.Hash
	test.ExpectedSuccess(t, ld3.Load())

	// an incorrect one does not
	ld4, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	ld4.Hash = "0000000000000000"
	test.ExpectedFailure(t, ld4.Load())
}

func TestGzipImage(t *testing.T) {
	b := &bytes.Buffer{}
	w := gzip.NewWriter(b)
	if _, err := w.Write(testProgram); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	fn := writeTestFile(t, "prog.com.gz", b.Bytes())

	// origin is taken from the extension inside the compression suffix
	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.Origin, romloader.CPMOrigin)
	test.Equate(t, ld.ShortName(), "prog")

	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, bytes.Equal(ld.Data, testProgram), true)
}

func TestZipImage(t *testing.T) {
	b := &bytes.Buffer{}
	w := zip.NewWriter(b)
	f, err := w.Create("game.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(testProgram); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	fn := writeTestFile(t, "bundle.zip", b.Bytes())

	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, bytes.Equal(ld.Data, testProgram), true)

	// the inner filename decides the origin
	test.Equate(t, ld.Origin, romloader.CPMOrigin)
}

func TestBadArchive(t *testing.T) {
	fn := writeTestFile(t, "prog.7z", []byte("not an archive"))

	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ld.Load())
}

func TestImageLimits(t *testing.T) {
	// an empty image is an error
	fn := writeTestFile(t, "empty.bin", []byte{})
	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ld.Load())

	// so is an image that spills out of addressable memory
	fn = writeTestFile(t, "large.bin", make([]byte, 0x10001))
	ld, err = romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ld.Load())

	// an exact fit is fine
	fn = writeTestFile(t, "exact.bin", make([]byte, 0x10000))
	ld, err = romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld.Load())
}
