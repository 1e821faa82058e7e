package diskimage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"

	"github.com/dyuri/lvlinfo/internal/binary"
)

// fat32Image creates an unpartitioned FAT32 image holding content at
// /LevelInfo.bin and returns its path.
func fat32Image(t *testing.T, content []byte) string {
	t.Helper()

	img := filepath.Join(t.TempDir(), "sd.img")
	d, err := diskfs.Create(img, 10*1024*1024, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer d.Close()

	fs, err := d.CreateFilesystem(disk.FilesystemSpec{Partition: 0, FSType: filesystem.TypeFat32})
	if err != nil {
		t.Fatalf("create filesystem: %v", err)
	}
	f, err := fs.OpenFile(DefaultPath, os.O_CREATE|os.O_RDWR)
	if err != nil {
		t.Fatalf("create file in image: %v", err)
	}
	if _, err := f.Write(content); err != nil {
		t.Fatalf("write file in image: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestCleanPath(t *testing.T) {
	tests := map[string]string{
		"LevelInfo.bin":              "/LevelInfo.bin",
		"/LevelInfo.bin":             "/LevelInfo.bin",
		"data/../data/LevelInfo.bin": "/data/LevelInfo.bin",
		"//root//LevelInfo.bin":      "/root/LevelInfo.bin",
	}

	for input, want := range tests {
		if got := cleanPath(input); got != want {
			t.Errorf("cleanPath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCheckContent(t *testing.T) {
	if err := checkContent([]byte("NWRp\x00\x00\x00\x00\x00")); err != nil {
		t.Errorf("checkContent of a LevelInfo file: %v", err)
	}

	for _, data := range [][]byte{nil, []byte("NWR"), []byte("MZ\x90\x00")} {
		if err := checkContent(data); !errors.Is(err, binary.ErrInvalidMagic) {
			t.Errorf("checkContent(%q) = %v, want ErrInvalidMagic", data, err)
		}
	}
}

func TestExtractMissingImage(t *testing.T) {
	dir := t.TempDir()
	_, err := Extract(filepath.Join(dir, "missing.img"), 0, DefaultPath, dir)
	if err == nil {
		t.Fatal("Extract of a missing image succeeded")
	}
}

func TestExtractNotAnImage(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "garbage.img")
	if err := os.WriteFile(img, make([]byte, 4096), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	if _, err := Extract(img, 0, DefaultPath, out); err == nil {
		t.Fatal("Extract from a zero-filled image succeeded")
	}
	if _, err := os.Stat(filepath.Join(out, "LevelInfo.bin")); err == nil {
		t.Error("Extract wrote an output file after failing")
	}
}

func TestExtractFromFAT32(t *testing.T) {
	content := append([]byte("NWRp\x00\x00\x00\x00"), "bundled\x00"...)
	img := fat32Image(t, content)
	out := filepath.Join(t.TempDir(), "out")

	for _, inner := range []string{DefaultPath, "LevelInfo.bin"} {
		path, err := Extract(img, 0, inner, out)
		if err != nil {
			t.Fatalf("Extract(%q) failed: %v", inner, err)
		}
		if path != filepath.Join(out, "LevelInfo.bin") {
			t.Errorf("Extract(%q) wrote %s", inner, path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("Extract(%q) = %q, want %q", inner, got, content)
		}
	}

	if _, err := Extract(img, 0, "/missing.bin", out); err == nil {
		t.Error("Extract of a missing file succeeded")
	}
}

func TestExtractRejectsOtherFiles(t *testing.T) {
	img := fat32Image(t, []byte("not a level table"))
	out := filepath.Join(t.TempDir(), "out")

	if _, err := Extract(img, 0, DefaultPath, out); !errors.Is(err, binary.ErrInvalidMagic) {
		t.Errorf("Extract error = %v, want ErrInvalidMagic", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("Extract created the output directory after failing")
	}
}
