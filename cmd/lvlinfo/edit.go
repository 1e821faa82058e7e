package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dyuri/lvlinfo/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// edit applies change to the LevelInfo file at path and saves it. The
// result must pass validation unless --force is given.
func (a *app) edit(cmd *cobra.Command, path string, change func(f *model.File) error) error {
	f, err := a.loadBinary(path)
	if err != nil {
		return err
	}
	if err := change(f); err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if err := a.checkWritable(f, force); err != nil {
		return err
	}
	return a.saveBinary(path, f)
}

func addForceFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("force", false, "Save even if validation finds errors")
}

func parseIndex(s, what string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s index %q", what, s)
	}
	return i, nil
}

// parsePair parses "W-L" into its two numbers.
func parsePair(s string) (int, int, error) {
	w, l, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid number %q (want WORLD-LEVEL)", s)
	}
	world, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q (want WORLD-LEVEL)", s)
	}
	level, err := strconv.Atoi(l)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q (want WORLD-LEVEL)", s)
	}
	return world, level, nil
}

// world command
func (a *app) worldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Add, remove, reorder, or change worlds",
		Long: `Edit the worlds of a LevelInfo file in place.

Worlds are addressed by their 0-based position in the file, as shown by
the info command. The file is backed up before it is saved.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <LevelInfo.bin>",
		Short: "Add a world",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runWorldAdd,
	}
	addCmd.Flags().Int("at", -1, "Insert before this index (default: append)")
	addWorldFlags(addCmd.Flags())

	setCmd := &cobra.Command{
		Use:   "set <LevelInfo.bin> <world>",
		Short: "Change a world's number or halves",
		Args:  cobra.ExactArgs(2),
		RunE:  a.runWorldSet,
	}
	addWorldFlags(setCmd.Flags())
	setCmd.Flags().Bool("no-left", false, "Remove the left half")
	setCmd.Flags().Bool("no-right", false, "Remove the right half")

	cmd.AddCommand(addCmd, setCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <LevelInfo.bin> <world>",
		Short: "Remove a world and its levels",
		Args:  cobra.ExactArgs(2),
		RunE:  a.runWorldRemove,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "move <LevelInfo.bin> <from> <to>",
		Short: "Move a world to another position",
		Args:  cobra.ExactArgs(3),
		RunE:  a.runWorldMove,
	})
	addForceFlag(cmd)
	return cmd
}

func addWorldFlags(flags *pflag.FlagSet) {
	flags.Int("number", 0, "World number (needs at least one half)")
	flags.String("left", "", "Add or rename the left half")
	flags.String("right", "", "Add or rename the right half")
}

// applyWorldFlags applies the flags that were given to w. Halves are
// added before others are removed so the world keeps its number.
func applyWorldFlags(flags *pflag.FlagSet, w *model.World) error {
	if flags.Changed("left") {
		name, _ := flags.GetString("left")
		w.SetLeft(true)
		if err := w.SetLeftName(name); err != nil {
			return err
		}
	}
	if flags.Changed("right") {
		name, _ := flags.GetString("right")
		w.SetRight(true)
		if err := w.SetRightName(name); err != nil {
			return err
		}
	}
	if flags.Lookup("no-left") != nil {
		if remove, _ := flags.GetBool("no-left"); remove {
			w.SetLeft(false)
		}
		if remove, _ := flags.GetBool("no-right"); remove {
			w.SetRight(false)
		}
	}

	if flags.Changed("number") {
		n, _ := flags.GetInt("number")
		if err := w.SetNumber(n); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runWorldAdd(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetInt("at")

	return a.edit(cmd, args[0], func(f *model.File) error {
		var w model.World
		if err := applyWorldFlags(cmd.Flags(), &w); err != nil {
			return err
		}
		if at < 0 {
			at = len(f.Worlds)
		}
		if err := f.InsertWorld(at, w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added world [%d] %s\n", at, w.Label())
		return nil
	})
}

func (a *app) runWorldSet(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.World(index)
		if err != nil {
			return err
		}
		if err := applyWorldFlags(cmd.Flags(), w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated world [%d] %s\n", index, w.Label())
		return nil
	})
}

func (a *app) runWorldRemove(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.RemoveWorld(index)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed world [%d] %s with %d level(s)\n", index, w.Label(), len(w.Levels))
		return nil
	})
}

func (a *app) runWorldMove(cmd *cobra.Command, args []string) error {
	from, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}
	to, err := parseIndex(args[2], "world")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		return f.MoveWorld(from, to)
	})
}

// level command
func (a *app) levelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Add, remove, reorder, or change levels",
		Long: `Edit the levels of one world of a LevelInfo file in place.

Worlds and levels are addressed by their 0-based positions. Numbers are
given as WORLD-LEVEL, e.g. --file 1-4 --display 1-4. The file is backed
up before it is saved.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <LevelInfo.bin> <world>",
		Short: "Add a level",
		Long: `Add a level to a world. Unless overridden, the new level is named
"New Level", loads file 1-1, and is listed in the star coins menu.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runLevelAdd,
	}
	addCmd.Flags().Int("at", -1, "Insert before this index (default: append)")
	addLevelFlags(addCmd.Flags())

	setCmd := &cobra.Command{
		Use:   "set <LevelInfo.bin> <world> <level>",
		Short: "Change a level",
		Args:  cobra.ExactArgs(3),
		RunE:  a.runLevelSet,
	}
	addLevelFlags(setCmd.Flags())

	cmd.AddCommand(addCmd, setCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <LevelInfo.bin> <world> <level>",
		Short: "Remove a level",
		Args:  cobra.ExactArgs(3),
		RunE:  a.runLevelRemove,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "move <LevelInfo.bin> <world> <from> <to>",
		Short: "Move a level within its world",
		Args:  cobra.ExactArgs(4),
		RunE:  a.runLevelMove,
	})
	addForceFlag(cmd)
	return cmd
}

func addLevelFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Level name")
	flags.String("file", "", "Level file number, WORLD-LEVEL (1-256 each)")
	flags.String("display", "", "On-screen number, WORLD-LEVEL (0-255 each)")
	flags.Bool("star-coins", false, "List in the star coins menu")
	flags.Bool("normal-exit", false, "Level has a normal exit")
	flags.Bool("secret-exit", false, "Level has a secret exit")
	flags.Bool("right-side", false, "Show on the right half of the world")
}

// applyLevelFlags applies the flags that were given to l.
func applyLevelFlags(flags *pflag.FlagSet, l *model.Level) error {
	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		if err := l.SetName(name); err != nil {
			return err
		}
	}
	if flags.Changed("file") {
		s, _ := flags.GetString("file")
		world, level, err := parsePair(s)
		if err != nil {
			return err
		}
		if err := l.SetFileNumber(world, level); err != nil {
			return err
		}
	}
	if flags.Changed("display") {
		s, _ := flags.GetString("display")
		world, level, err := parsePair(s)
		if err != nil {
			return err
		}
		if err := l.SetDisplayNumber(world, level); err != nil {
			return err
		}
	}

	for name, field := range map[string]*bool{
		"star-coins":  &l.InStarCoinsMenu,
		"normal-exit": &l.HasNormalExit,
		"secret-exit": &l.HasSecretExit,
		"right-side":  &l.IsRightSide,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetBool(name)
		}
	}
	return nil
}

func (a *app) runLevelAdd(cmd *cobra.Command, args []string) error {
	worldIndex, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}
	at, _ := cmd.Flags().GetInt("at")

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.World(worldIndex)
		if err != nil {
			return err
		}

		l := model.NewLevel()
		if err := applyLevelFlags(cmd.Flags(), &l); err != nil {
			return err
		}
		if at < 0 {
			at = len(w.Levels)
		}
		if err := w.InsertLevel(at, l); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added level [%d] %q to %s\n", at, l.Name, w.Label())
		return nil
	})
}

func (a *app) runLevelSet(cmd *cobra.Command, args []string) error {
	worldIndex, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}
	levelIndex, err := parseIndex(args[2], "level")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.World(worldIndex)
		if err != nil {
			return err
		}
		l, err := w.Level(levelIndex)
		if err != nil {
			return err
		}
		return applyLevelFlags(cmd.Flags(), l)
	})
}

func (a *app) runLevelRemove(cmd *cobra.Command, args []string) error {
	worldIndex, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}
	levelIndex, err := parseIndex(args[2], "level")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.World(worldIndex)
		if err != nil {
			return err
		}
		l, err := w.RemoveLevel(levelIndex)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed level %q from %s\n", l.Name, w.Label())
		return nil
	})
}

func (a *app) runLevelMove(cmd *cobra.Command, args []string) error {
	worldIndex, err := parseIndex(args[1], "world")
	if err != nil {
		return err
	}
	from, err := parseIndex(args[2], "level")
	if err != nil {
		return err
	}
	to, err := parseIndex(args[3], "level")
	if err != nil {
		return err
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		w, err := f.World(worldIndex)
		if err != nil {
			return err
		}
		return w.MoveLevel(from, to)
	})
}

// comments command
func (a *app) commentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Show or replace the file comment",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <LevelInfo.bin>",
		Short: "Print the file comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadBinary(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), f.Comments)
			if f.Comments != "" && !strings.HasSuffix(f.Comments, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	setCmd := &cobra.Command{
		Use:   "set <LevelInfo.bin> [text]",
		Short: "Replace the file comment",
		Long: `Replace the file comment with the given text, the content of
--from-file, or nothing with --clear.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.runCommentsSet,
	}
	setCmd.Flags().String("from-file", "", "Read the comment from a file")
	setCmd.Flags().Bool("clear", false, "Remove the comment")
	cmd.AddCommand(setCmd)
	addForceFlag(cmd)

	return cmd
}

func (a *app) runCommentsSet(cmd *cobra.Command, args []string) error {
	fromFile, _ := cmd.Flags().GetString("from-file")
	clearComments, _ := cmd.Flags().GetBool("clear")

	var comments string
	switch {
	case clearComments:
		if len(args) > 1 || fromFile != "" {
			return fmt.Errorf("--clear takes no text")
		}
	case fromFile != "":
		if len(args) > 1 {
			return fmt.Errorf("give either text or --from-file, not both")
		}
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return fmt.Errorf("read comment file: %w", err)
		}
		comments = string(data)
	case len(args) == 2:
		comments = args[1]
	default:
		return fmt.Errorf("no comment given (use text, --from-file, or --clear)")
	}

	return a.edit(cmd, args[0], func(f *model.File) error {
		return f.SetComments(comments)
	})
}
