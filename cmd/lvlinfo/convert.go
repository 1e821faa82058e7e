package main

import (
	"bytes"
	"fmt"

	"github.com/dyuri/lvlinfo/pkg/lvlinfo"
	"github.com/spf13/cobra"
)

// bin2txt command
func (a *app) bin2txtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bin2txt <LevelInfo.bin>",
		Short: "Convert binary LevelInfo to text form",
		Long: `Convert a binary LevelInfo file to its YAML or JSON text form.

The output can be edited and converted back to binary with txt2bin.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBin2Txt,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("format", "", "Output format: yaml, json (default: from config)")
	return cmd
}

func (a *app) runBin2Txt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format == "" {
		format = a.cfg.Text.Format
		if outputPath != "" {
			if f := textFormatFor(outputPath); f != "" {
				format = f
			}
		}
	}

	f, err := a.loadBinary(inputPath)
	if err != nil {
		return err
	}

	if outputPath == "" {
		return lvlinfo.WriteText(cmd.OutOrStdout(), f, format)
	}

	var buf bytes.Buffer
	if err := lvlinfo.WriteText(&buf, f, format); err != nil {
		return err
	}
	return a.save(outputPath, buf.Bytes())
}

// txt2bin command
func (a *app) txt2binCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txt2bin <levelinfo.yaml>",
		Short: "Convert text form to binary LevelInfo",
		Long: `Convert the YAML or JSON text form of a LevelInfo file to binary.

The input format follows the file extension (.yaml, .yml, .json) unless
--format is given. The input is validated first and not converted if it
has errors. An existing output file is backed up first.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTxt2Bin,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (required)")
	cmd.MarkFlagRequired("output")
	cmd.Flags().String("format", "", "Input format: yaml, json (default: from extension)")
	cmd.Flags().Bool("force", false, "Write the file even if validation finds errors")
	return cmd
}

func (a *app) runTxt2Bin(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format == "" {
		format = textFormatFor(inputPath)
	}
	if format == "" {
		format = a.cfg.Text.Format
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	f, err := lvlinfo.ParseText(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}

	force, _ := cmd.Flags().GetBool("force")
	if err := a.checkWritable(f, force); err != nil {
		return err
	}

	if err := a.saveBinary(outputPath, f); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully converted %s to %s\n", inputPath, outputPath)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Worlds: %d, Levels: %d\n", len(f.Worlds), f.LevelCount())
	return nil
}

// resave command
func (a *app) resaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resave <LevelInfo.bin>",
		Short: "Decode and re-encode a LevelInfo file",
		Long: `Decode a LevelInfo file and write it back with a freshly computed
layout. The original is backed up first.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runResave,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: overwrite input)")
	return cmd
}

func (a *app) runResave(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = inputPath
	}

	f, err := a.loadBinary(inputPath)
	if err != nil {
		return err
	}
	return a.saveBinary(outputPath, f)
}
