package invoices

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"invoice-backend/internal/shared/telemetry"
)

// TextAcquirer recovers plain text from a staged document.
type TextAcquirer interface {
	Text(ctx context.Context, path string) (string, error)
}

// Service stages an uploaded document, recovers its text and extracts
// structured invoice fields. Nothing is kept after the response.
type Service struct {
	Acquirer  TextAcquirer
	UploadDir string
}

// Process runs the acquisition and extraction pipeline for one document.
// The staged copy is removed on every exit path.
func (s *Service) Process(ctx context.Context, fileName string, r io.Reader) (Record, error) {
	stagedPath := filepath.Join(s.UploadDir, uuid.NewString()+".pdf")
	if err := stage(stagedPath, r); err != nil {
		return Record{}, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
			telemetry.Error("upload.cleanup", map[string]any{"path": stagedPath, "error": err.Error()})
		}
	}()

	text, err := s.Acquirer.Text(ctx, stagedPath)
	if err != nil {
		return Record{}, err
	}

	rec := Parse(text)
	rec.FileName = fileName
	return rec, nil
}

func stage(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}
