package imaging

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sundry/internal/fileutil"
)

// Properties describes the pixel characteristics of an image.
type Properties struct {
	Grayscale   bool
	Transparent bool
}

// Identify reports whether an image is stored as grayscale and whether it
// carries any transparent pixels.
func Identify(path string) (Properties, error) {
	img, err := decode(path)
	if err != nil {
		return Properties{}, err
	}
	var props Properties
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		props.Grayscale = true
	}
	if op, ok := img.(interface{ Opaque() bool }); ok {
		props.Transparent = !op.Opaque()
	}
	return props, nil
}

// GrayDifference sums the absolute channel differences over all pixels on an
// 8-bit scale. Near-zero values indicate a grayscale image stored in a color
// format.
func GrayDifference(path string) (float64, error) {
	img, err := decode(path)
	if err != nil {
		return 0, err
	}
	bounds := img.Bounds()
	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)
			total += abs(r-g) + abs(g-b) + abs(r-b)
		}
	}
	return total, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// IsGrayscale reports whether the summed channel difference stays below
// threshold per pixel.
func IsGrayscale(path string, threshold float64) (bool, error) {
	diff, err := GrayDifference(path)
	if err != nil {
		return false, err
	}
	width, height, err := imageDimensions(path)
	if err != nil {
		return false, err
	}
	return diff < float64(width*height)*threshold, nil
}

// GrayscaleMargin returns the channel difference minus the grayscale
// threshold scaled by pixel count. Negative values mean grayscale.
func GrayscaleMargin(path string, threshold float64) (float64, error) {
	diff, err := GrayDifference(path)
	if err != nil {
		return 0, err
	}
	width, height, err := imageDimensions(path)
	if err != nil {
		return 0, err
	}
	return diff - float64(width*height)*threshold, nil
}

// Filter names an image property used for extraction.
type Filter string

const (
	FilterGrayscale   Filter = "gsc"
	FilterColorful    Filter = "col"
	FilterTransparent Filter = "tra"
	FilterOpaque      Filter = "ntra"
)

// ExtractOptions configures a property-based extraction run.
type ExtractOptions struct {
	InputDir string
	// OutputDir defaults to InputDir/-<filter>.
	OutputDir string
	Filter    Filter
	Threshold float64
	Logger    *slog.Logger
}

// Extract moves the images matching the filter into the output directory,
// numbering name collisions. It returns the number of files moved.
func Extract(opts ExtractOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(opts.InputDir, "-"+string(opts.Filter))
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	match, err := filterFunc(opts.Filter, opts.Threshold)
	if err != nil {
		return 0, err
	}

	paths, err := collectImages(opts.InputDir, opts.OutputDir)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, path := range paths {
		ok, err := match(path)
		if err != nil {
			logger.Warn("skipping image", "path", path, "error", err)
			continue
		}
		if !ok {
			continue
		}
		target := fileutil.UniquePath(filepath.Join(opts.OutputDir, filepath.Base(path)))
		if err := fileutil.MoveFile(path, target); err != nil {
			return moved, fmt.Errorf("move %s: %w", path, err)
		}
		logger.Info("extracted", "path", path)
		moved++
	}
	return moved, nil
}

func filterFunc(f Filter, threshold float64) (func(string) (bool, error), error) {
	switch f {
	case FilterGrayscale:
		return func(p string) (bool, error) { return IsGrayscale(p, threshold) }, nil
	case FilterColorful:
		return func(p string) (bool, error) {
			gray, err := IsGrayscale(p, threshold)
			return !gray, err
		}, nil
	case FilterTransparent:
		return func(p string) (bool, error) {
			props, err := Identify(p)
			return props.Transparent, err
		}, nil
	case FilterOpaque:
		return func(p string) (bool, error) {
			props, err := Identify(p)
			return !props.Transparent, err
		}, nil
	default:
		return nil, fmt.Errorf("unknown filter %q", f)
	}
}

// SmallOptions configures moving undersized image files.
type SmallOptions struct {
	InputDir string
	// OutputDir defaults to InputDir/-small.
	OutputDir string
	// SizeLimitMB is the exclusive upper bound in megabytes.
	SizeLimitMB float64
	Logger      *slog.Logger
}

// ExtractSmall moves images smaller than the size limit into the output
// directory.
func ExtractSmall(opts SmallOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(opts.InputDir, "-small")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	limit := int64(opts.SizeLimitMB * 1024 * 1024)

	paths, err := collectImages(opts.InputDir, opts.OutputDir)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping image", "path", path, "error", err)
			continue
		}
		if info.Size() >= limit {
			continue
		}
		target := fileutil.UniquePath(filepath.Join(opts.OutputDir, filepath.Base(path)))
		if err := fileutil.MoveFile(path, target); err != nil {
			return moved, fmt.Errorf("move %s: %w", path, err)
		}
		logger.Info("moved small image", "path", path, "size", info.Size())
		moved++
	}
	return moved, nil
}

// collectImages walks the input tree for image files, skipping anything
// already under the output directory.
func collectImages(inputDir, outputDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if samePath(path, outputDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if isImage(d.Name()) && !strings.EqualFold(filepath.Ext(d.Name()), ".gif") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input dir: %w", err)
	}
	return paths, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
