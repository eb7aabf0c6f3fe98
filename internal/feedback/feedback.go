// Package feedback models the precomputed resume analysis the dashboard shows.
package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidFeedback wraps every validation failure from Decode and Validate.
var ErrInvalidFeedback = errors.New("invalid feedback")

// TipType marks a tip as a strength or an improvement.
type TipType string

const (
	TipGood    TipType = "good"
	TipImprove TipType = "improve"
)

// Tip is one observation in a category.
type Tip struct {
	Type        TipType `json:"type"`
	Tip         string  `json:"tip"`
	Explanation string  `json:"explanation,omitempty"`
}

// Category is a scored section of the analysis.
type Category struct {
	Score int   `json:"score"`
	Tips  []Tip `json:"tips"`
}

// ATS is the applicant-tracking-system section. Its tips have no explanation.
type ATS struct {
	Score int   `json:"score"`
	Tips  []Tip `json:"tips"`
}

// Feedback is the full analysis of one resume.
type Feedback struct {
	OverallScore int      `json:"overallScore"`
	ATS          ATS      `json:"ATS"`
	ToneAndStyle Category `json:"toneAndStyle"`
	Content      Category `json:"content"`
	Structure    Category `json:"structure"`
	Skills       Category `json:"skills"`
}

// Section is a detail category with the stable id used by the detail panel.
type Section struct {
	ID    string
	Title string
	Category
}

// Section ids, in display order.
const (
	SectionToneStyle = "tone-style"
	SectionContent   = "content"
	SectionStructure = "structure"
	SectionSkills    = "skills"
)

// Sections returns the detail categories in display order.
func (f Feedback) Sections() []Section {
	return []Section{
		{ID: SectionToneStyle, Title: "Tone & Style", Category: f.ToneAndStyle},
		{ID: SectionContent, Title: "Content", Category: f.Content},
		{ID: SectionStructure, Title: "Structure", Category: f.Structure},
		{ID: SectionSkills, Title: "Skills", Category: f.Skills},
	}
}

// SummaryRows returns the category rows of the summary card. The titles are
// longer than the detail section titles.
func (f Feedback) SummaryRows() []Section {
	return []Section{
		{ID: SectionToneStyle, Title: "Tone & Style", Category: f.ToneAndStyle},
		{ID: SectionContent, Title: "Content Quality", Category: f.Content},
		{ID: SectionStructure, Title: "Structure & Format", Category: f.Structure},
		{ID: SectionSkills, Title: "Skills & Keywords", Category: f.Skills},
	}
}

// Decode reads one JSON document and validates it.
func Decode(r io.Reader) (Feedback, error) {
	var f Feedback
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return Feedback{}, fmt.Errorf("%w: decode: %v", ErrInvalidFeedback, err)
	}
	if err := f.Validate(); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

// Validate checks score ranges and tip types.
func (f Feedback) Validate() error {
	if err := checkScore("overallScore", f.OverallScore); err != nil {
		return err
	}
	if err := checkScore("ATS", f.ATS.Score); err != nil {
		return err
	}
	if err := checkTips("ATS", f.ATS.Tips); err != nil {
		return err
	}
	for _, s := range f.Sections() {
		if err := checkScore(s.ID, s.Score); err != nil {
			return err
		}
		if err := checkTips(s.ID, s.Tips); err != nil {
			return err
		}
	}
	return nil
}

func checkScore(field string, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %s score %d outside 0..100", ErrInvalidFeedback, field, score)
	}
	return nil
}

func checkTips(field string, tips []Tip) error {
	for i, t := range tips {
		switch t.Type {
		case TipGood, TipImprove:
		default:
			return fmt.Errorf("%w: %s tip %d has type %q", ErrInvalidFeedback, field, i, t.Type)
		}
	}
	return nil
}

// Encode marshals f for storage.
func Encode(f Feedback) ([]byte, error) {
	return json.Marshal(f)
}
