package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	return img
}

// pdfBytes builds a minimal well-formed PDF with the given number of blank
// pages and an exact cross-reference table.
func pdfBytes(t *testing.T, pages int) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", i+3))
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

const validRoastJSON = `{
  "introduction": "Oh honey.",
  "mockScore": 42,
  "mockLabel": "Participation Trophy",
  "sections": [
    {"title": "Experience", "emoji": "💼", "rating": 2, "comment": "Three internships at the same lemonade stand."}
  ],
  "finalVerdict": "Rewrite it. All of it."
}`

// fakeModel is a RoastModel that records calls and returns canned output.
type fakeModel struct {
	mu       sync.Mutex
	calls    int
	payloads []*RoastPayload
	respond  func(ctx context.Context, payload *RoastPayload) (string, error)
}

func (f *fakeModel) Provider() string { return "fake" }

func (f *fakeModel) GenerateRoast(ctx context.Context, payload *RoastPayload) (string, error) {
	f.mu.Lock()
	f.calls++
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()

	if f.respond == nil {
		return validRoastJSON, nil
	}
	return f.respond(ctx, payload)
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
