// Package diskimage copies LevelInfo files out of FAT32 and ISO9660 disk
// images without mounting them.
package diskimage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	diskfs "github.com/diskfs/go-diskfs"

	"github.com/dyuri/lvlinfo/internal/binary"
)

// DefaultPath is where LevelInfo.bin is looked up inside an image.
const DefaultPath = "/LevelInfo.bin"

// Read returns the content of innerPath inside the filesystem of the
// given partition. Partition 0 is the whole disk, as used by ISO9660
// images and unpartitioned FAT32 images.
func Read(imagePath string, partition int, innerPath string) ([]byte, error) {
	d, err := diskfs.Open(imagePath, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return nil, fmt.Errorf("open disk image: %w", err)
	}
	defer d.Close()

	fs, err := d.GetFilesystem(partition)
	if err != nil {
		return nil, fmt.Errorf("read filesystem of partition %d: %w", partition, err)
	}

	f, err := fs.OpenFile(cleanPath(innerPath), os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s in image: %w", innerPath, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s from image: %w", innerPath, err)
	}
	return data, nil
}

// Extract copies innerPath out of the image into outputDir and returns
// the path of the written file. The copied data must carry the NWRp
// signature.
func Extract(imagePath string, partition int, innerPath, outputDir string) (string, error) {
	data, err := Read(imagePath, partition, innerPath)
	if err != nil {
		return "", err
	}
	if err := checkContent(data); err != nil {
		return "", fmt.Errorf("%s in %s: %w", innerPath, filepath.Base(imagePath), err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, path.Base(cleanPath(innerPath)))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return outputPath, nil
}

func checkContent(data []byte) error {
	if !bytes.HasPrefix(data, []byte(binary.Magic)) {
		return binary.ErrInvalidMagic
	}
	return nil
}

// cleanPath makes innerPath absolute with forward slashes, the form the
// go-diskfs filesystems expect.
func cleanPath(innerPath string) string {
	return path.Clean("/" + filepath.ToSlash(innerPath))
}
