package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyuri/lvlinfo/internal/diskimage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// extract command
func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <disk.img>",
		Short: "Extract LevelInfo.bin from a disk image",
		Long: `Copy LevelInfo.bin out of a FAT32 or ISO9660 disk image.

The image is opened read-only. Use --partition for partitioned images;
0 selects the whole disk.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runExtract,
	}
	cmd.Flags().StringP("output", "o", ".", "Output directory")
	cmd.Flags().String("path", diskimage.DefaultPath, "Path of the file inside the image")
	cmd.Flags().Int("partition", 0, "Partition number (0: whole disk)")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputDir, _ := cmd.Flags().GetString("output")
	innerPath, _ := cmd.Flags().GetString("path")
	partition, _ := cmd.Flags().GetInt("partition")

	target := filepath.Join(outputDir, filepath.Base(filepath.FromSlash(innerPath)))
	if a.cfg.Backup.Enabled {
		if _, err := a.backup(target); err != nil {
			return err
		}
	}

	a.log.WithFields(logrus.Fields{
		"image":     inputPath,
		"partition": partition,
		"path":      innerPath,
	}).Debug("extracting")

	outputPath, err := diskimage.Extract(inputPath, partition, innerPath, outputDir)
	if err != nil {
		return err
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("stat extracted file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s (%d bytes) to %s\n", innerPath, stat.Size(), outputPath)
	return nil
}
