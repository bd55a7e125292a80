package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minDirectTextLen is the trimmed-length threshold above which a PDF is
// considered to carry a usable embedded text layer. The check is strictly
// greater-than.
const minDirectTextLen = 20

// Recognizer recovers text from a document with no usable text layer.
type Recognizer interface {
	Recognize(ctx context.Context, pdfPath string) (string, error)
}

// Acquirer returns best-effort plain text for a document, invoking optical
// recognition only when direct extraction yields too little text.
type Acquirer struct {
	recognizer Recognizer
	direct     func(path string) (string, error)
}

// NewAcquirer constructs an Acquirer that falls back to the given recognizer.
func NewAcquirer(recognizer Recognizer) *Acquirer {
	return &Acquirer{recognizer: recognizer, direct: directText}
}

// Text extracts the document's text content. A direct-extraction failure is
// fatal for the request and does not fall through to OCR; only an
// insufficient text layer triggers the fallback.
func (a *Acquirer) Text(ctx context.Context, path string) (string, error) {
	text, err := a.direct(path)
	if err != nil {
		return "", fmt.Errorf("direct extraction: %w", err)
	}
	if len(strings.TrimSpace(text)) > minDirectTextLen {
		return text, nil
	}
	recovered, err := a.recognizer.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return recovered, nil
}

func directText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
