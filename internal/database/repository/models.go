package repository

import (
	"time"

	"github.com/jask/resumind/internal/feedback"
)

// Resume represents a resumes row.
type Resume struct {
	ID          string
	CompanyName string
	JobTitle    string
	ResumePath  string
	ImagePath   string
	Feedback    *feedback.Feedback
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Title is the company, the job title, or a placeholder when both are blank.
func (r Resume) Title() string {
	switch {
	case r.CompanyName != "" && r.JobTitle != "":
		return r.CompanyName + " · " + r.JobTitle
	case r.CompanyName != "":
		return r.CompanyName
	case r.JobTitle != "":
		return r.JobTitle
	default:
		return "Resume"
	}
}

// Setting represents a settings row.
type Setting struct {
	Key   string
	Value string
}
