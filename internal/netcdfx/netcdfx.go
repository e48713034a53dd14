package netcdfx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"golang.org/x/sync/errgroup"
)

// Point is a geographic location in degrees north / degrees east.
type Point struct {
	Lat float64
	Lon float64
}

// Sample is one extracted value with its time as seconds since 1900-01-01.
type Sample struct {
	Seconds int64
	Value   float64
}

// Extractor pulls a single variable's time series at the grid point nearest
// to Point from NetCDF files. The nearest-index lookup is computed once and
// reused, so all files must share one grid.
type Extractor struct {
	Point    Point
	Variable string
	Logger   *slog.Logger

	mu     sync.Mutex
	cached *gridIndex
}

type gridIndex struct {
	lat int
	lon int
}

// CollectInputFiles resolves input to the .nc files to process: the file
// itself, or every .nc file under a directory.
func CollectInputFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(input), ".nc") {
			return nil, fmt.Errorf("input file is not a .nc file: %s", input)
		}
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".nc") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .nc files found in directory: %s", input)
	}
	sort.Strings(files)
	return files, nil
}

// ExtractAll processes files concurrently. Files that fail are logged and
// skipped; the combined samples come back sorted by time. progress may be
// nil.
func (e *Extractor) ExtractAll(files []string, workers int, progress func()) ([]Sample, error) {
	if workers <= 0 {
		workers = 1
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		mu      sync.Mutex
		samples []Sample
	)
	var group errgroup.Group
	group.SetLimit(workers)
	for _, path := range files {
		group.Go(func() error {
			fileSamples, err := e.ExtractFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("skipping file", "path", path, "error", err)
			} else {
				samples = append(samples, fileSamples...)
			}
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("no data extracted from any input file")
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Seconds < samples[j].Seconds })
	return samples, nil
}

// ExtractFile reads one NetCDF file and returns the variable's values at the
// nearest grid point, one sample per time step.
func (e *Extractor) ExtractFile(path string) ([]Sample, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netcdf: %w", err)
	}
	defer nc.Close()

	idx, err := e.gridIndexFor(nc)
	if err != nil {
		return nil, err
	}

	timeVar, err := nc.GetVariable("time")
	if err != nil {
		return nil, fmt.Errorf("read time variable: %w", err)
	}
	times, err := toFloat64Slice(timeVar.Values)
	if err != nil {
		return nil, fmt.Errorf("time variable: %w", err)
	}

	dataVar, err := nc.GetVariable(e.Variable)
	if err != nil {
		return nil, fmt.Errorf("read variable %q: %w", e.Variable, err)
	}
	if len(dataVar.Dimensions) < 3 {
		return nil, fmt.Errorf("variable %q has %d dimensions, want at least 3",
			e.Variable, len(dataVar.Dimensions))
	}

	latPos, lonPos := dimPositions(dataVar.Dimensions)
	timePos := 3 - latPos - lonPos

	values := reflect.ValueOf(dataVar.Values)
	samples := make([]Sample, 0, len(times))
	for t := range times {
		var idxs [3]int
		idxs[timePos] = t
		idxs[latPos] = idx.lat
		idxs[lonPos] = idx.lon
		v, err := floatAt(values, idxs[:])
		if err != nil {
			return nil, fmt.Errorf("variable %q at time step %d: %w", e.Variable, t, err)
		}
		samples = append(samples, Sample{Seconds: hoursToSeconds(times[t]), Value: v})
	}
	return samples, nil
}

func (e *Extractor) gridIndexFor(nc netcdfGroup) (gridIndex, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached != nil {
		return *e.cached, nil
	}

	latVar, err := nc.GetVariable("lat")
	if err != nil {
		return gridIndex{}, fmt.Errorf("read lat variable: %w", err)
	}
	lats, err := toFloat64Slice(latVar.Values)
	if err != nil {
		return gridIndex{}, fmt.Errorf("lat variable: %w", err)
	}
	lonVar, err := nc.GetVariable("lon")
	if err != nil {
		return gridIndex{}, fmt.Errorf("read lon variable: %w", err)
	}
	lons, err := toFloat64Slice(lonVar.Values)
	if err != nil {
		return gridIndex{}, fmt.Errorf("lon variable: %w", err)
	}
	if len(lats) == 0 || len(lons) == 0 {
		return gridIndex{}, errors.New("empty lat or lon axis")
	}

	e.cached = &gridIndex{
		lat: nearestIndex(lats, e.Point.Lat),
		lon: nearestIndex(lons, e.Point.Lon),
	}
	return *e.cached, nil
}

func dimPositions(dims []string) (latPos, lonPos int) {
	latPos, lonPos = 1, 2
	for i, d := range dims {
		switch strings.ToLower(d) {
		case "lat", "latitude":
			latPos = i
		case "lon", "longitude":
			lonPos = i
		}
	}
	return latPos, lonPos
}

// nearestIndex returns the index of the axis value closest to target.
func nearestIndex(axis []float64, target float64) int {
	best := 0
	bestDist := math.Abs(axis[0] - target)
	for i, v := range axis[1:] {
		if d := math.Abs(v - target); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

var epoch1900 = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

func hoursToSeconds(hours float64) int64 {
	return int64(math.Round(hours * 3600))
}

// Timestamp formats seconds since 1900-01-01 as "YYYY-MM-DD hh:mm:ss".
func Timestamp(seconds int64) string {
	return epoch1900.Add(time.Duration(seconds) * time.Second).Format("2006-01-02 15:04:05")
}
