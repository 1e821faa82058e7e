package lvlinfo

import (
	"strings"
	"testing"

	"github.com/dyuri/lvlinfo/internal/model"
)

func findIssue(issues []ValidationError, field, level string) *ValidationError {
	for i := range issues {
		if issues[i].Field == field && issues[i].Level == level {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateClean(t *testing.T) {
	issues := Validate(sampleFile())
	if len(issues) != 0 {
		t.Errorf("Validate reported %d issues on a clean file: %v", len(issues), issues)
	}
	if HasErrors(issues) {
		t.Error("HasErrors = true, want false")
	}
}

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *model.File)
		field  string
		level  string
	}{
		{
			name:   "half without number",
			modify: func(f *model.File) { f.Worlds[0].Number = nil },
			field:  "worlds[0].number",
			level:  LevelError,
		},
		{
			name: "number without half",
			modify: func(f *model.File) {
				f.Worlds[0].HasLeft = false
				f.Worlds[0].HasRight = false
			},
			field: "worlds[0].number",
			level: LevelWarning,
		},
		{
			name:   "world number too large",
			modify: func(f *model.File) { n := 256; f.Worlds[0].Number = &n },
			field:  "worlds[0].number",
			level:  LevelError,
		},
		{
			name:   "long half name",
			modify: func(f *model.File) { f.Worlds[0].NameLeft = strings.Repeat("a", 256) },
			field:  "worlds[0].left",
			level:  LevelError,
		},
		{
			name:   "unsupported character",
			modify: func(f *model.File) { f.Worlds[0].NameRight = "Ωmega" },
			field:  "worlds[0].right",
			level:  LevelError,
		},
		{
			name:   "latin-1 character",
			modify: func(f *model.File) { f.Worlds[0].Levels[0].Name = "Café" },
			field:  "worlds[0].levels[0].name",
			level:  LevelWarning,
		},
		{
			name:   "empty level name",
			modify: func(f *model.File) { f.Worlds[0].Levels[1].Name = "" },
			field:  "worlds[0].levels[1].name",
			level:  LevelWarning,
		},
		{
			name:   "file number zero",
			modify: func(f *model.File) { f.Worlds[0].Levels[0].FileLevel = 0 },
			field:  "worlds[0].levels[0].file",
			level:  LevelError,
		},
		{
			name:   "display level in header range",
			modify: func(f *model.File) { f.Worlds[0].Levels[1].DisplayLevel = 100 },
			field:  "worlds[0].levels[1].display",
			level:  LevelError,
		},
		{
			name:   "display world out of range",
			modify: func(f *model.File) { f.Worlds[0].Levels[1].DisplayWorld = -1 },
			field:  "worlds[0].levels[1].display",
			level:  LevelError,
		},
		{
			name:   "comments with NUL",
			modify: func(f *model.File) { f.Comments = "a\x00b" },
			field:  "comments",
			level:  LevelWarning,
		},
		{
			name:   "comments with control character",
			modify: func(f *model.File) { f.Comments = "bell\a" },
			field:  "comments",
			level:  LevelWarning,
		},
		{
			name:   "world without levels",
			modify: func(f *model.File) { f.Worlds[0].Levels = nil },
			field:  "worlds[0]",
			level:  LevelWarning,
		},
		{
			name: "duplicate world number",
			modify: func(f *model.File) {
				w := f.Worlds[0]
				w.Levels = append([]model.Level(nil), w.Levels...)
				f.Worlds = append(f.Worlds, w)
			},
			field: "worlds[1].number",
			level: LevelWarning,
		},
	}

	for _, tt := range tests {
		f := sampleFile()
		tt.modify(f)

		issues := Validate(f)
		if findIssue(issues, tt.field, tt.level) == nil {
			t.Errorf("%s: no %s for %s in %v", tt.name, tt.level, tt.field, issues)
		}
		if got := HasErrors(issues); got != (tt.level == LevelError) {
			t.Errorf("%s: HasErrors = %v", tt.name, got)
		}
	}
}

func TestValidateCommentLineBreaks(t *testing.T) {
	f := sampleFile()
	f.Comments = "line one\r\nline two\tend"
	if issues := Validate(f); len(issues) != 0 {
		t.Errorf("Validate reported %v, want no issues", issues)
	}
}

func TestValidateDoesNotModify(t *testing.T) {
	f := sampleFile()
	f.Worlds[0].Number = nil
	Validate(f)
	if f.Worlds[0].Number != nil {
		t.Error("Validate set a world number")
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "comments", Message: "bad", Level: LevelError}
	if e.String() != "comments: bad" {
		t.Errorf("String() = %q, want %q", e.String(), "comments: bad")
	}
	if s := (ValidationError{Message: "bad"}).String(); s != "bad" {
		t.Errorf("String() = %q, want %q", s, "bad")
	}
}
