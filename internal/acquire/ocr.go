package acquire

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/otiai10/gosseract/v2"

	"invoice-backend/internal/shared/telemetry"
)

const (
	rasterTimeout     = 60 * time.Second
	defaultOCRTimeout = 120 * time.Second
)

// TesseractRecognizer rasterizes a PDF page with Ghostscript and runs
// Tesseract on the result.
type TesseractRecognizer struct {
	ghostscriptBin string
	languages      []string
	workDir        string
	timeout        time.Duration

	raster    func(ctx context.Context, pdfPath, imagePath string) error
	recognize func(imagePath string) (string, error)
}

// NewTesseractRecognizer constructs a recognizer that stages intermediate
// images under workDir. A non-positive timeout selects the default bound.
func NewTesseractRecognizer(ghostscriptBin string, languages []string, workDir string, timeout time.Duration) *TesseractRecognizer {
	if ghostscriptBin == "" {
		ghostscriptBin = "gs"
	}
	if timeout <= 0 {
		timeout = defaultOCRTimeout
	}
	r := &TesseractRecognizer{
		ghostscriptBin: ghostscriptBin,
		languages:      languages,
		workDir:        workDir,
		timeout:        timeout,
	}
	r.raster = r.rasterize
	r.recognize = r.runTesseract
	return r
}

// Recognize produces plain text for a scanned document. The whole call is
// bounded by the configured timeout; the Tesseract client and the
// intermediate image are released on every exit path, and cleanup failures
// are logged without masking the primary error.
func (r *TesseractRecognizer) Recognize(ctx context.Context, pdfPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	imagePath := filepath.Join(r.workDir, fmt.Sprintf("invoice_%s.png", uuid.NewString()))
	defer func() {
		if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
			telemetry.Error("ocr.cleanup", map[string]any{"image": imagePath, "error": err.Error()})
		}
	}()

	if err := r.raster(ctx, pdfPath, imagePath); err != nil {
		return "", fmt.Errorf("rasterize: %w", err)
	}
	enhanceImage(imagePath)

	// The engine call is cgo and cannot be interrupted, so it runs on its
	// own goroutine and the deadline is enforced here.
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := r.recognize(imagePath)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("recognize: %w", res.err)
		}
		return res.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("recognize: timeout: %w", ctx.Err())
	}
}

// runTesseract owns the client lifetime so a timed-out call still releases
// the engine when it eventually returns.
func (r *TesseractRecognizer) runTesseract(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(r.languages) > 0 {
		if err := client.SetLanguage(r.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	return client.Text()
}

func (r *TesseractRecognizer) rasterize(ctx context.Context, pdfPath, imagePath string) error {
	ctx, cancel := context.WithTimeout(ctx, rasterTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.ghostscriptBin,
		"-q", "-dNOPAUSE", "-dBATCH", "-sDEVICE=png16m", "-r300",
		"-sOutputFile="+imagePath, pdfPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("no image produced: %w", err)
	}
	return nil
}

// enhanceImage applies grayscale, contrast and sharpen passes before
// recognition. Failures are non-fatal; the raw raster is kept.
func enhanceImage(path string) {
	src, err := imaging.Open(path)
	if err != nil {
		telemetry.Error("ocr.enhance", map[string]any{"image": path, "error": err.Error()})
		return
	}
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	if err := imaging.Save(img, path); err != nil {
		telemetry.Error("ocr.enhance", map[string]any{"image": path, "error": err.Error()})
	}
}
