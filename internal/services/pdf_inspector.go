package services

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

type PDFInspector interface {
	Inspect(data []byte) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
}

type pdfInspector struct {
	maxPages int
}

func NewPDFInspector(maxPages int) PDFInspector {
	return &pdfInspector{maxPages: maxPages}
}

// Inspect opens the document and checks its page count. Nothing is
// extracted; the model reads the uploaded file itself.
func (p *pdfInspector) Inspect(data []byte) (info *PDFInfo, err error) {
	// The parser panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = newRoastError(KindInvalidFile, "could not read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, newRoastError(KindInvalidFile, "could not read PDF: %w", err)
	}

	pageCount := r.NumPage()
	if pageCount <= 0 {
		return nil, newRoastError(KindInvalidFile, "PDF has no pages")
	}

	if p.maxPages > 0 && pageCount > p.maxPages {
		return nil, newRoastError(KindInvalidFile, "PDF has %d pages, the limit is %d", pageCount, p.maxPages)
	}

	return &PDFInfo{PageCount: pageCount}, nil
}
