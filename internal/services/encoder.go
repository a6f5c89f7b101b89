package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MimePDF  = "application/pdf"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

var allowedMimeTypes = map[string]struct{}{
	MimePDF:  {},
	MimeJPEG: {},
	MimePNG:  {},
}

// UploadedFile is a file as received from the user, before any checks.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// EncodedFile is the transmissible form of an uploaded file.
type EncodedFile struct {
	Name     string
	MimeType string
	Base64   string
	Size     int64
}

// DataURL renders the file as a data URL.
func (f *EncodedFile) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", f.MimeType, f.Base64)
}

// Bytes decodes the payload back into raw bytes.
func (f *EncodedFile) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.Base64)
}

type FileEncoder interface {
	Encode(file UploadedFile) (*EncodedFile, error)
}

type fileEncoder struct {
	maxFileSize  int64
	pdfInspector PDFInspector
}

func NewFileEncoder(maxFileSize int64, pdfInspector PDFInspector) FileEncoder {
	return &fileEncoder{
		maxFileSize:  maxFileSize,
		pdfInspector: pdfInspector,
	}
}

// NormalizeMimeType drops parameters and lower-cases a content type.
func NormalizeMimeType(raw string) string {
	mimeType, _, _ := strings.Cut(raw, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "image/jpg" || mimeType == "image/pjpeg" {
		return MimeJPEG
	}
	return mimeType
}

func IsAllowedMimeType(mimeType string) bool {
	_, ok := allowedMimeTypes[NormalizeMimeType(mimeType)]
	return ok
}

// Encode implements FileEncoder.
func (e *fileEncoder) Encode(file UploadedFile) (*EncodedFile, error) {
	mimeType := NormalizeMimeType(file.MimeType)
	if !IsAllowedMimeType(mimeType) {
		return nil, newRoastError(KindUnsupportedFileType, "mime type %q is not allowed", file.MimeType)
	}

	size := int64(len(file.Data))
	if size == 0 {
		return nil, newRoastError(KindInvalidFile, "file is empty")
	}
	if e.maxFileSize > 0 && size > e.maxFileSize {
		return nil, newRoastError(KindInvalidFile, "file is larger than %d bytes", e.maxFileSize)
	}

	detected := mimetype.Detect(file.Data)
	if !detected.Is(mimeType) {
		return nil, newRoastError(KindUnsupportedFileType, "content looks like %s, not %s", detected.String(), mimeType)
	}

	if mimeType == MimePDF && e.pdfInspector != nil {
		info, err := e.pdfInspector.Inspect(file.Data)
		if err != nil {
			return nil, err
		}
		log.Printf("📄 PDF %q has %d page(s)", file.Name, info.PageCount)
	}

	return &EncodedFile{
		Name:     file.Name,
		MimeType: mimeType,
		Base64:   base64.StdEncoding.EncodeToString(file.Data),
		Size:     size,
	}, nil
}

// ReadMultipartFile reads an uploaded form file into memory once. The size
// is checked before the body is read; the type is left to the encoder.
func ReadMultipartFile(fh *multipart.FileHeader, maxFileSize int64) (UploadedFile, error) {
	mimeType := fh.Header.Get("Content-Type")

	if maxFileSize > 0 && fh.Size > maxFileSize {
		return UploadedFile{}, newRoastError(KindInvalidFile, "file is larger than %d bytes", maxFileSize)
	}

	src, err := fh.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	reader := io.Reader(src)
	if maxFileSize > 0 {
		reader = io.LimitReader(src, maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return UploadedFile{
		Name:     fh.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
