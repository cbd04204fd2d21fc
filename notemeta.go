package md2slides

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// NoteMeta holds the front-matter fields of a source note that steer the
// conversion. Unknown fields are ignored.
type NoteMeta struct {
	SlideDesign        string     `yaml:"slideDesign"`
	SlideLocation      string     `yaml:"slideLocation"`
	SlideWidth         int        `yaml:"slideWidth"`
	SlideHeight        int        `yaml:"slideHeight"`
	SlideLogoOrTagline string     `yaml:"slideLogoOrTagline"`
	SlideNavOn         *bool      `yaml:"slideNavOn"`
	AutoConvertLinks   *bool      `yaml:"autoConvertLinks"`
	ParagraphFragments *bool      `yaml:"enableParagraphFragments"`
	SlideName          string     `yaml:"slideName"`
	LastButNotLeast    string     `yaml:"lastButNotLeast"`
	Aliases            stringList `yaml:"aliases"`

	TOCClass       string `yaml:"tocPageListClass"`
	ChapterClass   string `yaml:"chapterPageListClass"`
	ContentClass   string `yaml:"contentPageListClass"`
	BlankClass     string `yaml:"blankPageListClass"`
	BackCoverClass string `yaml:"backCoverPageListClass"`

	// Set by generated decks.
	Marp      bool `yaml:"marp"`
	SlideMode bool `yaml:"slideMode"`
}

// Classes returns the list-class overrides of the note.
func (m NoteMeta) Classes() pipeline.Classes {
	return pipeline.Classes{
		TOC:       m.TOCClass,
		Chapter:   m.ChapterClass,
		Content:   m.ContentClass,
		Blank:     m.BlankClass,
		BackCover: m.BackCoverClass,
	}
}

// stringList accepts a YAML sequence or a single scalar.
type stringList []string

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (l *stringList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*l = list
		return nil
	}
	var one string
	if err := unmarshal(&one); err != nil {
		return err
	}
	if one = strings.TrimSpace(one); one != "" {
		*l = stringList{one}
	}
	return nil
}

// ParseNote splits a note into its metadata and body.
func ParseNote(content string) (NoteMeta, string, error) {
	var meta NoteMeta
	body, err := yamlutil.ParseFrontMatter(content, &meta)
	if err != nil {
		return NoteMeta{}, "", fmt.Errorf("parsing front-matter: %w", err)
	}
	return meta, body, nil
}

var slideMarkup = regexp.MustCompile(`(?m)^[ \t]*<!--\s*(?:_id:|_class:|slide\b)`)

// alreadyConverted reports whether a note is a generated deck.
func alreadyConverted(meta NoteMeta, body string) bool {
	return meta.Marp || meta.SlideMode || slideMarkup.MatchString(body)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
