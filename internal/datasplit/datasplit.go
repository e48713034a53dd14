// Package datasplit splits paired image/label datasets into train and
// validation trees and emits the matching data.yaml manifest.
package datasplit

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"sundry/internal/fileutil"
)

// Options configures one split run.
type Options struct {
	ImageDir     string
	LabelDir     string
	OutputDir    string
	ClassesFile  string
	TrainRatio   float64
	NoValidation bool
	DryRun       bool
	ImageExt     string
	Workers      int
	Logger       *slog.Logger
	// Progress is called once per copied pair.
	Progress func()
}

func (o *Options) validate() error {
	if o.TrainRatio <= 0 || o.TrainRatio > 1 {
		return fmt.Errorf("train ratio %.2f out of range (0, 1]", o.TrainRatio)
	}
	if _, err := os.Stat(o.ImageDir); err != nil {
		return fmt.Errorf("image directory: %w", err)
	}
	if _, err := os.Stat(o.LabelDir); err != nil {
		return fmt.Errorf("label directory: %w", err)
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Run collects paired files, splits them, copies them into the output tree,
// and writes data.yaml.
func Run(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	stems, err := CollectPairs(opts.ImageDir, opts.LabelDir, opts.ImageExt, opts.logger())
	if err != nil {
		return err
	}
	train, val := Split(stems, opts.TrainRatio, opts.NoValidation)
	opts.logger().Info("split computed", "pairs", len(stems), "train", len(train), "val", len(val))

	if err := copySet(train, "train", opts); err != nil {
		return err
	}
	if len(val) > 0 {
		if err := copySet(val, "val", opts); err != nil {
			return err
		}
	}
	return writeManifest(opts)
}

// CollectPairs returns the file stems that have both an image with the given
// extension and a matching .txt label. Images without labels are logged and
// skipped.
func CollectPairs(imageDir, labelDir, imageExt string, logger *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	ext := "." + strings.TrimPrefix(strings.ToLower(imageExt), ".")

	var stems []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ext {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if _, err := os.Stat(filepath.Join(labelDir, stem+".txt")); err != nil {
			logger.Warn("label file missing", "stem", stem)
			continue
		}
		stems = append(stems, stem)
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("no paired %s/.txt files found", ext)
	}
	return stems, nil
}

// Split shuffles stems deterministically and cuts them at the train ratio.
func Split(stems []string, trainRatio float64, noValidation bool) (train, val []string) {
	shuffled := ShuffleDeterministic(stems)
	cut := int(trainRatio * float64(len(shuffled)))
	train = shuffled[:cut]
	if !noValidation {
		val = shuffled[cut:]
	}
	return train, val
}

// ShuffleDeterministic orders stems by their FNV-1a hash, so the same input
// set always produces the same split.
func ShuffleDeterministic(stems []string) []string {
	type hashed struct {
		stem string
		sum  uint64
	}
	items := make([]hashed, len(stems))
	for i, s := range stems {
		h := fnv.New64a()
		h.Write([]byte(s))
		items[i] = hashed{stem: s, sum: h.Sum64()}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].sum != items[j].sum {
			return items[i].sum < items[j].sum
		}
		return items[i].stem < items[j].stem
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.stem
	}
	return out
}

func copySet(stems []string, setName string, opts Options) error {
	ext := "." + strings.TrimPrefix(strings.ToLower(opts.ImageExt), ".")
	imgDst := filepath.Join(opts.OutputDir, setName, "images")
	labelDst := filepath.Join(opts.OutputDir, setName, "labels")

	if opts.DryRun {
		logger := opts.logger()
		for _, stem := range stems {
			logger.Info("would copy pair", "set", setName, "stem", stem)
		}
		return nil
	}

	for _, dir := range []string{imgDst, labelDst} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	var group errgroup.Group
	group.SetLimit(workers)
	for _, stem := range stems {
		group.Go(func() error {
			img := stem + ext
			label := stem + ".txt"
			if err := fileutil.CopyFile(filepath.Join(opts.ImageDir, img), filepath.Join(imgDst, img)); err != nil {
				return fmt.Errorf("copy image %s: %w", img, err)
			}
			if err := fileutil.CopyFile(filepath.Join(opts.LabelDir, label), filepath.Join(labelDst, label)); err != nil {
				return fmt.Errorf("copy label %s: %w", label, err)
			}
			if opts.Progress != nil {
				opts.Progress()
			}
			return nil
		})
	}
	return group.Wait()
}

type manifest struct {
	Train string   `yaml:"train"`
	Val   string   `yaml:"val"`
	NC    int      `yaml:"nc"`
	Names []string `yaml:"names"`
}

// Manifest renders the data.yaml content for the split layout.
func Manifest(outputDir, classesFile string, noValidation bool, logger *slog.Logger) ([]byte, error) {
	var classes []string
	if data, err := os.ReadFile(classesFile); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				classes = append(classes, line)
			}
		}
	} else {
		logger.Warn("classes file missing, writing empty class list", "path", classesFile)
	}

	m := manifest{
		Train: outputDir + "/train/images",
		NC:    len(classes),
		Names: classes,
	}
	if !noValidation {
		m.Val = outputDir + "/val/images"
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal data.yaml: %w", err)
	}
	return out, nil
}

func writeManifest(opts Options) error {
	content, err := Manifest(opts.OutputDir, opts.ClassesFile, opts.NoValidation, opts.logger())
	if err != nil {
		return err
	}
	path := filepath.Join(opts.OutputDir, "data.yaml")
	if opts.DryRun {
		opts.logger().Info("would write manifest", "path", path)
		return nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write data.yaml: %w", err)
	}
	return nil
}
