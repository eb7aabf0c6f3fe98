package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
	"github.com/jask/resumind/internal/storage"
)

var (
	ErrNotPDF   = errors.New("only PDF files are accepted")
	ErrTooLarge = errors.New("file exceeds upload limit")
	ErrNotFound = errors.New("resume not found")
)

// PDFPattern is the glob a resume file name must match (case-insensitive).
const PDFPattern = "*.pdf"

// ResumeStore is the persistence the service needs.
type ResumeStore interface {
	Upsert(ctx context.Context, r repository.Resume) error
	UpdateFeedback(ctx context.Context, id string, f feedback.Feedback) error
	Get(ctx context.Context, id string) (*repository.Resume, error)
	List(ctx context.Context) ([]repository.Resume, error)
	Delete(ctx context.Context, id string) error
}

// ResumeService uploads, imports and serves resumes and their feedback.
type ResumeService struct {
	Resumes        ResumeStore
	Files          storage.Store
	MaxUploadBytes int64
	Log            *zap.Logger
}

// UploadRequest describes one resume chosen in the uploader.
type UploadRequest struct {
	Path        string
	CompanyName string
	JobTitle    string
	Feedback    *feedback.Feedback
}

// FormatSize renders a byte count for display.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// CheckUpload validates a candidate file without reading it.
func (s *ResumeService) CheckUpload(path string) (os.FileInfo, error) {
	ok, err := doublestar.Match(PDFPattern, strings.ToLower(filepath.Base(path)))
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotPDF, path)
	}
	if s.MaxUploadBytes > 0 && info.Size() > s.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %s is %s, limit %s", ErrTooLarge, filepath.Base(path),
			FormatSize(info.Size()), FormatSize(s.MaxUploadBytes))
	}
	return info, nil
}

// Upload copies the PDF into storage and records a new resume.
func (s *ResumeService) Upload(ctx context.Context, req UploadRequest) (repository.Resume, error) {
	return s.store(ctx, uuid.NewString(), req)
}

func (s *ResumeService) store(ctx context.Context, id string, req UploadRequest) (repository.Resume, error) {
	if req.Feedback != nil {
		if err := req.Feedback.Validate(); err != nil {
			return repository.Resume{}, err
		}
	}
	res := repository.Resume{
		ID:          id,
		CompanyName: strings.TrimSpace(req.CompanyName),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Feedback:    req.Feedback,
	}
	if req.Path != "" {
		if _, err := s.CheckUpload(req.Path); err != nil {
			return repository.Resume{}, err
		}
		f, err := os.Open(req.Path)
		if err != nil {
			return repository.Resume{}, fmt.Errorf("open %s: %w", req.Path, err)
		}
		defer f.Close()
		stored, err := s.Files.Write(ctx, filepath.Join("resumes", id+".pdf"), f)
		if err != nil {
			return repository.Resume{}, fmt.Errorf("store resume: %w", err)
		}
		res.ResumePath = stored
		res.ImagePath = previewPath(id)
	}
	if err := s.Resumes.Upsert(ctx, res); err != nil {
		return repository.Resume{}, fmt.Errorf("save resume: %w", err)
	}
	s.logger().Info("resume stored",
		zap.String("id", res.ID),
		zap.String("company", res.CompanyName),
		zap.Bool("feedback", res.Feedback != nil))
	return res, nil
}

func previewPath(id string) string {
	return filepath.ToSlash(filepath.Join("previews", id+".png"))
}

// AttachFeedback stores analysis results for an existing resume.
func (s *ResumeService) AttachFeedback(ctx context.Context, id string, f feedback.Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.Resumes.UpdateFeedback(ctx, id, f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("attach feedback: %w", err)
	}
	return nil
}

func (s *ResumeService) List(ctx context.Context) ([]repository.Resume, error) {
	list, err := s.Resumes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return list, nil
}

func (s *ResumeService) Get(ctx context.Context, id string) (repository.Resume, error) {
	res, err := s.Resumes.Get(ctx, id)
	if err != nil {
		return repository.Resume{}, fmt.Errorf("get resume: %w", err)
	}
	if res == nil {
		return repository.Resume{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *res, nil
}

// Delete removes the row and its stored files.
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	res, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range []string{res.ResumePath, res.ImagePath} {
		if p == "" {
			continue
		}
		if err := s.Files.Remove(ctx, p); err != nil {
			return fmt.Errorf("delete resume files: %w", err)
		}
	}
	if err := s.Resumes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}

// Preview returns the rendered preview image, or nil when there is none.
// Read failures are logged and reported as "no preview".
func (s *ResumeService) Preview(ctx context.Context, res repository.Resume) []byte {
	if res.ImagePath == "" {
		return nil
	}
	data, err := s.Files.Read(ctx, res.ImagePath)
	if err != nil {
		s.logger().Debug("no preview", zap.String("id", res.ID), zap.Error(err))
		return nil
	}
	return data
}

// ImportDoc is the JSON document accepted by ImportFeedbackFile.
type ImportDoc struct {
	CompanyName string             `json:"companyName"`
	JobTitle    string             `json:"jobTitle"`
	ResumePath  string             `json:"resumePath,omitempty"`
	Feedback    *feedback.Feedback `json:"feedback"`
}

// ImportID derives a stable resume id from an import file name so that
// re-importing the same file updates the row in place.
func ImportID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("resumind-import:"+filepath.Base(path))).String()
}

// ImportFeedbackFile reads an ImportDoc and creates or updates its resume.
// A relative resumePath is resolved against the document's directory; without
// one, a re-import keeps the PDF stored by an earlier import. Documents
// without feedback are rejected with feedback.ErrInvalidFeedback.
func (s *ResumeService) ImportFeedbackFile(ctx context.Context, path string) (repository.Resume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return repository.Resume{}, fmt.Errorf("read %s: %w", path, err)
	}
	var doc ImportDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return repository.Resume{}, fmt.Errorf("%w: %s: %v", feedback.ErrInvalidFeedback, filepath.Base(path), err)
	}
	if doc.Feedback == nil {
		return repository.Resume{}, fmt.Errorf("%w: %s: missing feedback", feedback.ErrInvalidFeedback, filepath.Base(path))
	}
	pdf := doc.ResumePath
	if pdf != "" && !filepath.IsAbs(pdf) {
		pdf = filepath.Join(filepath.Dir(path), pdf)
	}
	res, err := s.store(ctx, ImportID(path), UploadRequest{
		Path:        pdf,
		CompanyName: doc.CompanyName,
		JobTitle:    doc.JobTitle,
		Feedback:    doc.Feedback,
	})
	if err != nil {
		return repository.Resume{}, err
	}
	if pdf == "" {
		// the row may already point at a stored PDF
		return s.Get(ctx, res.ID)
	}
	return res, nil
}

func (s *ResumeService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
