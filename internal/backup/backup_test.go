package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dyuri/lvlinfo/internal/logging"
)

var allFormats = []Format{FormatNone, FormatGzip, FormatZstd, FormatLZ4, FormatXZ}

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func TestCompressRoundTrip(t *testing.T) {
	data := append([]byte("NWRp\x00\x00\x00\x01"), bytes.Repeat([]byte{0x00, 0xd0, 0x41}, 500)...)

	for _, format := range allFormats {
		compressed, err := Compress(data, format)
		if err != nil {
			t.Fatalf("%s: Compress failed: %v", format, err)
		}
		if format != FormatNone && bytes.Equal(compressed, data) {
			t.Errorf("%s: Compress returned its input", format)
		}

		got, err := Decompress(compressed, format)
		if err != nil {
			t.Fatalf("%s: Decompress failed: %v", format, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%s: round trip changed the data", format)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ok    bool
	}{
		{"", FormatNone, true},
		{"none", FormatNone, true},
		{"GZIP", FormatGzip, true},
		{"zstd", FormatZstd, true},
		{"lz4", FormatLZ4, true},
		{"xz", FormatXZ, true},
		{"bzip2", "", false},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParseFormat(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"LevelInfo.bin":                          FormatNone,
		"LevelInfo.bin.20240309-140507.bak":      FormatNone,
		"LevelInfo.bin.20240309-140507.bak.gz":   FormatGzip,
		"LevelInfo.bin.20240309-140507.bak.zst":  FormatZstd,
		"/tmp/LevelInfo.bin.20240309-140507.LZ4": FormatLZ4,
		"x.xz":                                   FormatXZ,
	}

	for name, want := range tests {
		if got := FormatFromName(name); got != want {
			t.Errorf("FormatFromName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestName(t *testing.T) {
	got := Name("/data/LevelInfo.bin", fixedClock(), FormatZstd)
	want := "LevelInfo.bin.20240309-140507.bak.zst"
	if got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
}

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LevelInfo.bin")
	original := []byte("NWRp\x00\x00\x00\x00\x00")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, format := range allFormats {
		backupDir := filepath.Join(dir, "backups", string(format))
		name, err := Write(logging.Discard(), path, Options{Dir: backupDir, Format: format, Now: fixedClock})
		if err != nil {
			t.Fatalf("%s: Write failed: %v", format, err)
		}

		want := filepath.Join(backupDir, "LevelInfo.bin.20240309-140507.bak"+format.Ext())
		if name != want {
			t.Errorf("%s: backup = %q, want %q", format, name, want)
		}

		got, err := ReadFile(name)
		if err != nil {
			t.Fatalf("%s: ReadFile failed: %v", format, err)
		}
		if !bytes.Equal(got, original) {
			t.Errorf("%s: backup content = %q, want %q", format, got, original)
		}
	}
}

func TestWriteSameSecond(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LevelInfo.bin")
	if err := os.WriteFile(path, []byte("NWRp"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Format: FormatGzip, Now: fixedClock}
	first, err := Write(logging.Discard(), path, opts)
	if err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	second, err := Write(logging.Discard(), path, opts)
	if err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	if first == second {
		t.Fatalf("both backups written to %s", first)
	}
	if !strings.HasSuffix(second, "-1.bak.gz") {
		t.Errorf("second backup = %q, want a -1.bak.gz suffix", second)
	}
	if filepath.Dir(first) != dir {
		t.Errorf("backup written to %s, want %s", filepath.Dir(first), dir)
	}
}

func TestWriteMissingFile(t *testing.T) {
	name, err := Write(logging.Discard(), filepath.Join(t.TempDir(), "absent.bin"), Options{Format: FormatGzip})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if name != "" {
		t.Errorf("backup = %q, want none", name)
	}
}

func TestDecompressCorrupt(t *testing.T) {
	for _, format := range []Format{FormatGzip, FormatZstd, FormatXZ} {
		if _, err := Decompress([]byte("not compressed"), format); err == nil {
			t.Errorf("%s: Decompress of garbage succeeded", format)
		}
	}
}
