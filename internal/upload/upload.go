// Package upload validates uploaded image files and normalizes them to
// fixed-size PNGs before they are persisted as entity binaries.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"strings"

	_ "image/jpeg" // jpeg decode support

	"github.com/nfnt/resize"
)

// MaxFileSize is the upload bound in bytes.
const MaxFileSize = 1000000

// MaxGalleryFiles caps a single multi-photo upload.
const MaxGalleryFiles = 10

var allowedExtensions = []string{".jpg", ".png", ".jpeg"}

var (
	ErrInvalidFileType = errors.New("please upload a image")
	ErrFileTooLarge    = errors.New("image is too large")
	ErrTooManyFiles    = errors.New("maximum 10 images please")
	ErrTransform       = errors.New("image transform failed")
)

// Target is the exact output dimensions of the resize stage.
type Target struct {
	Width  uint
	Height uint
}

var (
	ItemTarget     = Target{Width: 250, Height: 250}
	PhotoTarget    = Target{Width: 1280, Height: 853}
	CarouselTarget = Target{Width: 1600, Height: 600}
)

type Processor struct {
	MaxFileSize int64
}

func NewProcessor() *Processor {
	return &Processor{MaxFileSize: MaxFileSize}
}

// Validate runs the cheap checks that must pass before any transform work:
// the filename extension (case-sensitive) and the declared part size.
func (p *Processor) Validate(fh *multipart.FileHeader) error {
	ok := false
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(fh.Filename, ext) {
			ok = true
			break
		}
	}
	if !ok {
		return ErrInvalidFileType
	}
	if fh.Size > p.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Process validates, reads, and transforms a single uploaded file.
func (p *Processor) Process(fh *multipart.FileHeader, t Target) ([]byte, error) {
	if err := p.Validate(fh); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// The size bound is enforced again while reading; the multipart header
	// size is client-declared.
	raw, err := io.ReadAll(io.LimitReader(f, p.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(raw)) > p.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return p.Transform(raw, t)
}

// ProcessAll is the multi-file variant used by the photo gallery. Every
// file is validated before the first transform runs, so one bad file
// rejects the whole batch up front.
func (p *Processor) ProcessAll(fhs []*multipart.FileHeader, t Target) ([][]byte, error) {
	if len(fhs) > MaxGalleryFiles {
		return nil, ErrTooManyFiles
	}
	for _, fh := range fhs {
		if err := p.Validate(fh); err != nil {
			return nil, err
		}
	}

	out := make([][]byte, 0, len(fhs))
	for _, fh := range fhs {
		buf, err := p.Process(fh, t)
		if err != nil {
			return nil, err
		}
		out = append(out, buf)
	}
	return out, nil
}

// Transform resizes raw image bytes to the exact target dimensions and
// re-encodes as PNG regardless of the source format.
func (p *Processor) Transform(raw []byte, t Target) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	resized := resize.Resize(t.Width, t.Height, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}
	return buf.Bytes(), nil
}
