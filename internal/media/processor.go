package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"net/http"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 2560
	defaultJPEGQuality  = 3
	defaultPNGLevel     = 4
	defaultWebPQuality  = 85
)

var (
	ErrEmptyImage       = errors.New("media: empty image")
	ErrUnsupportedImage = errors.New("media: unsupported image type")
)

var supportedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Extension returns the canonical file extension for the result's content type.
func (r *Result) Extension() string {
	return ExtensionFor(r.ContentType)
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// FFMPEGProcessor validates uploads and shells out to ffmpeg to shrink images
// whose longest edge exceeds the configured dimension. GIFs are never resized.
type FFMPEGProcessor struct {
	path         string
	maxDimension int
}

func NewFFMPEGProcessor(binaryPath string, maxDimension int) *FFMPEGProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFMPEGProcessor{path: path, maxDimension: maxDimension}
}

func (p *FFMPEGProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	data, contentType, width, height, err := Inspect(upload)
	if err != nil {
		return nil, err
	}

	limit := maxDimension
	if limit <= 0 {
		limit = p.maxDimension
	}
	result := &Result{Bytes: data, ContentType: contentType, Width: width, Height: height}
	if contentType == "image/gif" || (width <= limit && height <= limit) {
		return result, nil
	}

	targetW, targetH := ScaleToFit(width, height, limit)
	resized, err := p.transcode(ctx, data, contentType, targetW, targetH)
	if err != nil {
		return nil, err
	}
	result.Bytes = resized
	result.Width, result.Height = targetW, targetH
	result.Resized = true
	return result, nil
}

// Inspect reads the upload, resolves its content type and decodes its dimensions.
func Inspect(upload Upload) ([]byte, string, int, int, error) {
	if upload.Reader == nil {
		return nil, "", 0, 0, ErrEmptyImage
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", 0, 0, ErrEmptyImage
	}

	contentType := ResolveContentType(upload.ContentType, upload.FileName, data)
	if !IsSupported(contentType) {
		return nil, "", 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", 0, 0, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	return data, contentType, cfg.Width, cfg.Height, nil
}

func IsSupported(contentType string) bool {
	_, ok := supportedTypes[contentType]
	return ok
}

func ExtensionFor(contentType string) string {
	if ext, ok := supportedTypes[contentType]; ok {
		return ext
	}
	return ".img"
}

// ResolveContentType prefers the declared type, then the file extension, then sniffing.
func ResolveContentType(declared, fileName string, data []byte) string {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	if ct == "image/jpg" || ct == "image/pjpeg" {
		ct = "image/jpeg"
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case "":
	default:
		if mt := mime.TypeByExtension(filepath.Ext(fileName)); mt != "" {
			return strings.ToLower(mt)
		}
	}

	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

// ScaleToFit keeps the aspect ratio while bounding the longest edge by maxDim.
func ScaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		return atLeastTwo(maxDim), atLeastTwo(int(math.Round(float64(height) * float64(maxDim) / float64(width))))
	}
	return atLeastTwo(int(math.Round(float64(width) * float64(maxDim) / float64(height)))), atLeastTwo(maxDim)
}

func atLeastTwo(v int) int {
	if v < 2 {
		return 2
	}
	return v
}

func (p *FFMPEGProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	var codecArgs []string
	switch contentType {
	case "image/jpeg":
		codecArgs = []string{"-c:v", "mjpeg", "-q:v", strconv.Itoa(defaultJPEGQuality)}
	case "image/png":
		codecArgs = []string{"-c:v", "png", "-compression_level", strconv.Itoa(defaultPNGLevel)}
	case "image/webp":
		codecArgs = []string{"-c:v", "libwebp", "-quality", strconv.Itoa(defaultWebPQuality)}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", width, height),
		"-frames:v", "1",
		"-f", "image2",
	}
	args = append(args, codecArgs...)
	args = append(args, "pipe:1")

	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}
