package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/dyuri/lvlinfo/internal/binary"
	"github.com/dyuri/lvlinfo/internal/model"
	"github.com/spf13/cobra"
)

// info command
func (a *app) infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <LevelInfo.bin>",
		Short: "Display LevelInfo file information",
		Long: `Display metadata and statistics about a LevelInfo file.

Shows file size and timestamps, the world list as the level-selection
editor labels it, and the level count of every world.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runInfo,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("brief", false, "Show only summary")
	return cmd
}

type fileTimes struct {
	Modified time.Time  `json:"modified"`
	Accessed time.Time  `json:"accessed"`
	Changed  *time.Time `json:"changed,omitempty"`
	Born     *time.Time `json:"born,omitempty"`
}

type worldInfo struct {
	Index     int     `json:"index"`
	Label     string  `json:"label"`
	Number    *int    `json:"number,omitempty"`
	Left      *string `json:"left,omitempty"`
	Right     *string `json:"right,omitempty"`
	Levels    int     `json:"levels"`
	Secret    int     `json:"secret_exits"`
	StarCoins int     `json:"star_coins_menu"`
}

type fileInfo struct {
	Path           string      `json:"path"`
	Size           int64       `json:"size"`
	Times          *fileTimes  `json:"times,omitempty"`
	Worlds         []worldInfo `json:"worlds"`
	Levels         int         `json:"levels"`
	Entries        int         `json:"entries"`
	CommentsOffset int64       `json:"comments_offset"`
	Comments       string      `json:"comments"`
}

func (a *app) runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	brief, _ := cmd.Flags().GetBool("brief")

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}
	f, err := a.decode(inputPath, data)
	if err != nil {
		return err
	}

	info := collectInfo(inputPath, int64(len(data)), f)

	if ts, err := times.Stat(inputPath); err != nil {
		a.log.WithError(err).Debug("no file timestamps")
	} else {
		info.Times = &fileTimes{
			Modified: ts.ModTime(),
			Accessed: ts.AccessTime(),
		}
		if ts.HasChangeTime() {
			c := ts.ChangeTime()
			info.Times.Changed = &c
		}
		if ts.HasBirthTime() {
			b := ts.BirthTime()
			info.Times.Born = &b
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}
	outputInfoText(out, info, brief)
	return nil
}

func collectInfo(path string, size int64, f *model.File) *fileInfo {
	info := &fileInfo{
		Path:           path,
		Size:           size,
		Worlds:         make([]worldInfo, 0, len(f.Worlds)),
		Levels:         f.LevelCount(),
		Entries:        f.EntryCount(),
		CommentsOffset: binary.CommentsOffset(f),
		Comments:       f.Comments,
	}

	for i := range f.Worlds {
		w := &f.Worlds[i]
		wi := worldInfo{
			Index:  i,
			Label:  w.Label(),
			Number: w.Number,
			Levels: len(w.Levels),
		}
		if w.HasLeft {
			wi.Left = &w.NameLeft
		}
		if w.HasRight {
			wi.Right = &w.NameRight
		}
		for _, l := range w.Levels {
			if l.HasSecretExit {
				wi.Secret++
			}
			if l.InStarCoinsMenu {
				wi.StarCoins++
			}
		}
		info.Worlds = append(info.Worlds, wi)
	}
	return info
}

func outputInfoText(out io.Writer, info *fileInfo, brief bool) {
	if brief {
		// Brief mode: just the counts
		fmt.Fprintf(out, "%s: Worlds=%d Levels=%d Size=%d\n",
			info.Path, len(info.Worlds), info.Levels, info.Size)
		return
	}

	fmt.Fprintf(out, "File: %s\n", filepath.Base(info.Path))
	fmt.Fprintf(out, "Size: %d bytes, %d table entries\n", info.Size, info.Entries)
	if info.Times != nil {
		fmt.Fprintf(out, "Modified: %s\n", info.Times.Modified.Format(time.RFC3339))
		if info.Times.Born != nil {
			fmt.Fprintf(out, "Created: %s\n", info.Times.Born.Format(time.RFC3339))
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Worlds: %d\n", len(info.Worlds))
	for _, w := range info.Worlds {
		fmt.Fprintf(out, "  [%d] %s: %d level(s)", w.Index, w.Label, w.Levels)
		if w.Secret > 0 {
			fmt.Fprintf(out, ", %d secret exit(s)", w.Secret)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Levels: %d\n", info.Levels)

	fmt.Fprintln(out)
	if info.Comments == "" {
		fmt.Fprintln(out, "Comments: (none)")
		return
	}
	fmt.Fprintf(out, "Comments (at 0x%x):\n", info.CommentsOffset)
	for _, line := range strings.Split(info.Comments, "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}
}
