// Package pdfx extracts text from PDF documents and draws first-page
// previews of them.
package pdfx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/ledongthuc/pdf"
)

// Extractor pulls the plain text of every page.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the document text. Malformed input, including inputs that
// make the parser panic, yields common.ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := openReader(data)
	if err != nil {
		return "", err
	}

	var text string
	err = guard(func() error {
		plain, err := r.GetPlainText()
		if err != nil {
			return err
		}
		b, err := io.ReadAll(plain)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(string(b))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExtraction, err)
	}

	return text, nil
}

func openReader(data []byte) (*pdf.Reader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", common.ErrExtraction)
	}

	var r *pdf.Reader
	err := guard(func() error {
		var err error
		r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", common.ErrExtraction, err)
	}
	if r.NumPage() == 0 {
		return nil, fmt.Errorf("%w: no pages", common.ErrExtraction)
	}
	return r, nil
}

// guard converts parser panics into errors.
func guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return fn()
}
