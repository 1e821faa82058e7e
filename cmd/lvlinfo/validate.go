package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dyuri/lvlinfo/pkg/lvlinfo"
	"github.com/spf13/cobra"
)

// validate command
func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate LevelInfo file structure",
		Long: `Validate a LevelInfo file, binary or text form.

Checks for values the binary format cannot store (errors) and for
unusual content such as empty names or duplicate world numbers
(warnings).`,
		Args: cobra.ExactArgs(1),
		RunE: a.runValidate,
	}
	cmd.Flags().Bool("strict", false, "Fail on warnings")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	strict, _ := cmd.Flags().GetBool("strict")

	f, err := a.loadAny(inputPath)
	if err != nil {
		return err
	}

	report := newReport(inputPath, strict, lvlinfo.Validate(f))
	report.print(cmd.OutOrStdout())

	if report.hasErrors() || (strict && report.hasWarnings()) {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// report counts validation issues by level and prints them one per line.
type report struct {
	file     string
	strict   bool
	issues   []lvlinfo.ValidationError
	errors   int
	warnings int
}

func newReport(file string, strict bool, issues []lvlinfo.ValidationError) *report {
	r := &report{file: file, strict: strict, issues: issues}
	for _, issue := range issues {
		if issue.Level == lvlinfo.LevelError {
			r.errors++
		} else {
			r.warnings++
		}
	}
	return r
}

func (r *report) hasErrors() bool {
	return r.errors > 0
}

func (r *report) hasWarnings() bool {
	return r.warnings > 0
}

func (r *report) print(out io.Writer) {
	if len(r.issues) == 0 {
		fmt.Fprintf(out, "%s: no issues found\n", r.file)
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, issue := range r.issues {
		field := issue.Field
		if field == "" {
			field = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", issue.Level, field, issue.Message)
	}
	tw.Flush()

	fmt.Fprintf(out, "%s: %d error(s), %d warning(s)\n", r.file, r.errors, r.warnings)
	switch {
	case r.hasErrors():
		fmt.Fprintln(out, "Saving this file would change its level table.")
	case r.strict:
		fmt.Fprintln(out, "Warnings count as errors with --strict.")
	}
}
