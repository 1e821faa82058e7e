package text

import (
	"fmt"

	"github.com/dyuri/lvlinfo/internal/model"
)

// Supported text formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// document is the editable text layout of a LevelInfo file.
//
//	comments: "..."
//	worlds:
//	  - number: 1
//	    left: {name: "World 1"}
//	    levels:
//	      - name: "1-1"
//	        file: [1, 1]
//	        display: [1, 1]
//	        star_coins_menu: true
type document struct {
	Comments string  `yaml:"comments,omitempty" json:"comments,omitempty"`
	Worlds   []world `yaml:"worlds" json:"worlds"`
}

type world struct {
	Number *int    `yaml:"number,omitempty" json:"number,omitempty"`
	Left   *half   `yaml:"left,omitempty" json:"left,omitempty"`
	Right  *half   `yaml:"right,omitempty" json:"right,omitempty"`
	Levels []level `yaml:"levels,omitempty" json:"levels,omitempty"`
}

type half struct {
	Name string `yaml:"name" json:"name"`
}

type level struct {
	Name          string `yaml:"name" json:"name"`
	File          []int  `yaml:"file,flow" json:"file"`
	Display       []int  `yaml:"display,flow" json:"display"`
	StarCoinsMenu bool   `yaml:"star_coins_menu" json:"star_coins_menu"`
	NormalExit    bool   `yaml:"normal_exit" json:"normal_exit"`
	SecretExit    bool   `yaml:"secret_exit" json:"secret_exit"`
	RightSide     bool   `yaml:"right_side" json:"right_side"`
}

// CheckFormat reports whether format names a supported text format.
func CheckFormat(format string) error {
	switch format {
	case FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func fromModel(f *model.File) document {
	doc := document{
		Comments: f.Comments,
		Worlds:   make([]world, 0, len(f.Worlds)),
	}

	for i := range f.Worlds {
		w := &f.Worlds[i]
		out := world{}
		if w.Number != nil {
			n := *w.Number
			out.Number = &n
		}
		if w.HasLeft {
			out.Left = &half{Name: w.NameLeft}
		}
		if w.HasRight {
			out.Right = &half{Name: w.NameRight}
		}
		for _, l := range w.Levels {
			out.Levels = append(out.Levels, level{
				Name:          l.Name,
				File:          []int{l.FileWorld, l.FileLevel},
				Display:       []int{l.DisplayWorld, l.DisplayLevel},
				StarCoinsMenu: l.InStarCoinsMenu,
				NormalExit:    l.HasNormalExit,
				SecretExit:    l.HasSecretExit,
				RightSide:     l.IsRightSide,
			})
		}
		doc.Worlds = append(doc.Worlds, out)
	}

	return doc
}

// toModel builds a model from a decoded document, applying every value
// through the model setters so range errors carry the field path.
func (doc *document) toModel() (*model.File, error) {
	f := model.NewFile()
	if err := f.SetComments(doc.Comments); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}

	for i, in := range doc.Worlds {
		w := f.AddWorld()

		if in.Left != nil {
			w.SetLeft(true)
			if err := w.SetLeftName(in.Left.Name); err != nil {
				return nil, fmt.Errorf("worlds[%d].left: %w", i, err)
			}
		}
		if in.Right != nil {
			w.SetRight(true)
			if err := w.SetRightName(in.Right.Name); err != nil {
				return nil, fmt.Errorf("worlds[%d].right: %w", i, err)
			}
		}
		if in.Number != nil {
			if err := w.SetNumber(*in.Number); err != nil {
				return nil, fmt.Errorf("worlds[%d].number: %w", i, err)
			}
		}

		for j, lin := range in.Levels {
			path := fmt.Sprintf("worlds[%d].levels[%d]", i, j)

			l := model.Level{
				InStarCoinsMenu: lin.StarCoinsMenu,
				HasNormalExit:   lin.NormalExit,
				HasSecretExit:   lin.SecretExit,
				IsRightSide:     lin.RightSide,
			}
			if err := l.SetName(lin.Name); err != nil {
				return nil, fmt.Errorf("%s.name: %w", path, err)
			}
			if len(lin.File) != 2 {
				return nil, fmt.Errorf("%s.file: want [world, level], got %v", path, lin.File)
			}
			if err := l.SetFileNumber(lin.File[0], lin.File[1]); err != nil {
				return nil, fmt.Errorf("%s.file: %w", path, err)
			}
			if len(lin.Display) != 2 {
				return nil, fmt.Errorf("%s.display: want [world, level], got %v", path, lin.Display)
			}
			if err := l.SetDisplayNumber(lin.Display[0], lin.Display[1]); err != nil {
				return nil, fmt.Errorf("%s.display: %w", path, err)
			}
			w.Levels = append(w.Levels, l)
		}
	}

	return f, nil
}
