package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jask/resumind/internal/feedback"
)

// ResumeRepo handles resumes.
type ResumeRepo struct {
	db *sql.DB
}

func NewResumeRepo(db *sql.DB) *ResumeRepo { return &ResumeRepo{db: db} }

const resumeColumns = `id, company_name, job_title, resume_path, image_path, feedback, created_at, updated_at`

// Upsert inserts res or updates the existing row. Empty file paths keep the
// stored ones.
func (r *ResumeRepo) Upsert(ctx context.Context, res Resume) error {
	fb, err := encodeFeedback(res.Feedback)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO resumes(id, company_name, job_title, resume_path, image_path, feedback, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 company_name=excluded.company_name,
	 job_title=excluded.job_title,
	 resume_path=COALESCE(NULLIF(excluded.resume_path, ''), resume_path),
	 image_path=COALESCE(NULLIF(excluded.image_path, ''), image_path),
	 feedback=excluded.feedback,
	 updated_at=CURRENT_TIMESTAMP;
	`, res.ID, res.CompanyName, res.JobTitle, res.ResumePath, res.ImagePath, fb)
	return err
}

func (r *ResumeRepo) UpdateFeedback(ctx context.Context, id string, f feedback.Feedback) error {
	fb, err := encodeFeedback(&f)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE resumes SET feedback = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, fb, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Get returns nil, nil when the row does not exist.
func (r *ResumeRepo) Get(ctx context.Context, id string) (*Resume, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = ?`, id)
	res, err := scanResume(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// List returns resumes newest first.
func (r *ResumeRepo) List(ctx context.Context) ([]Resume, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+resumeColumns+` FROM resumes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ResumeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(s rowScanner) (Resume, error) {
	var (
		res Resume
		fb  sql.NullString
	)
	if err := s.Scan(&res.ID, &res.CompanyName, &res.JobTitle, &res.ResumePath, &res.ImagePath, &fb, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return Resume{}, err
	}
	if fb.Valid && fb.String != "" {
		f, err := feedback.Decode(strings.NewReader(fb.String))
		if err != nil {
			return Resume{}, fmt.Errorf("resume %s: %w", res.ID, err)
		}
		res.Feedback = &f
	}
	return res, nil
}

func encodeFeedback(f *feedback.Feedback) (any, error) {
	if f == nil {
		return nil, nil
	}
	raw, err := feedback.Encode(*f)
	if err != nil {
		return nil, fmt.Errorf("encode feedback: %w", err)
	}
	return string(raw), nil
}
