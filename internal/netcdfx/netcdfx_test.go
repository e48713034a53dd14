package netcdfx

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

type stubGroup struct {
	vars map[string]*api.Variable
}

func (g *stubGroup) GetVariable(name string) (*api.Variable, error) {
	v, ok := g.vars[name]
	if !ok {
		return nil, fmt.Errorf("variable %q not found", name)
	}
	return v, nil
}

func TestNearestIndex(t *testing.T) {
	axis := []float64{10, 20, 30, 40}
	tests := []struct {
		target float64
		want   int
	}{
		{9, 0},
		{21, 1},
		{34.9, 2},
		{100, 3},
	}
	for _, tt := range tests {
		if got := nearestIndex(axis, tt.target); got != tt.want {
			t.Fatalf("nearestIndex(%v) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestTimestampFrom1900(t *testing.T) {
	if got := Timestamp(0); got != "1900-01-01 00:00:00" {
		t.Fatalf("Timestamp(0) = %q", got)
	}
	// 24 hours in.
	if got := Timestamp(hoursToSeconds(24)); got != "1900-01-02 00:00:00" {
		t.Fatalf("Timestamp(24h) = %q", got)
	}
	if got := Timestamp(hoursToSeconds(1.5)); got != "1900-01-01 01:30:00" {
		t.Fatalf("Timestamp(1.5h) = %q", got)
	}
}

func TestToFloat64Slice(t *testing.T) {
	got, err := toFloat64Slice([]float32{1.5, 2.5})
	if err != nil {
		t.Fatalf("toFloat64Slice: %v", err)
	}
	if got[0] != 1.5 || got[1] != 2.5 {
		t.Fatalf("got %v", got)
	}

	got, err = toFloat64Slice([]int32{3, 4})
	if err != nil {
		t.Fatalf("toFloat64Slice ints: %v", err)
	}
	if got[0] != 3 || got[1] != 4 {
		t.Fatalf("got %v", got)
	}

	if _, err := toFloat64Slice("nope"); err == nil {
		t.Fatal("expected error for non-slice")
	}
}

func TestFloatAtNested(t *testing.T) {
	data := [][][]float32{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}
	got, err := floatAt(reflect.ValueOf(data), []int{1, 0, 1})
	if err != nil {
		t.Fatalf("floatAt: %v", err)
	}
	if got != 6 {
		t.Fatalf("floatAt = %v, want 6", got)
	}

	if _, err := floatAt(reflect.ValueOf(data), []int{5, 0, 0}); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestDimPositions(t *testing.T) {
	lat, lon := dimPositions([]string{"time", "latitude", "longitude"})
	if lat != 1 || lon != 2 {
		t.Fatalf("positions = %d, %d", lat, lon)
	}
	lat, lon = dimPositions([]string{"lat", "lon", "time"})
	if lat != 0 || lon != 1 {
		t.Fatalf("positions = %d, %d", lat, lon)
	}
	// Unnamed axes fall back to the conventional ordering.
	lat, lon = dimPositions([]string{"t", "y", "x"})
	if lat != 1 || lon != 2 {
		t.Fatalf("fallback positions = %d, %d", lat, lon)
	}
}

func TestGridIndexCaching(t *testing.T) {
	group := &stubGroup{vars: map[string]*api.Variable{
		"lat": {Values: []float32{30, 31, 32}, Dimensions: []string{"lat"}},
		"lon": {Values: []float32{110, 111, 112}, Dimensions: []string{"lon"}},
	}}
	ex := &Extractor{Point: Point{Lat: 31.2, Lon: 111.9}, Variable: "wind"}

	idx, err := ex.gridIndexFor(group)
	if err != nil {
		t.Fatalf("gridIndexFor: %v", err)
	}
	if idx.lat != 1 || idx.lon != 2 {
		t.Fatalf("index = %+v", idx)
	}

	// A second lookup must hit the cache, not the group.
	idx, err = ex.gridIndexFor(&stubGroup{vars: map[string]*api.Variable{}})
	if err != nil {
		t.Fatalf("cached gridIndexFor: %v", err)
	}
	if idx.lat != 1 || idx.lon != 2 {
		t.Fatalf("cached index = %+v", idx)
	}
}

func TestCollectInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.nc", "a.nc", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := CollectInputFiles(dir)
	if err != nil {
		t.Fatalf("CollectInputFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "a.nc" || filepath.Base(files[1]) != "b.nc" {
		t.Fatalf("files = %v", files)
	}

	single, err := CollectInputFiles(files[0])
	if err != nil {
		t.Fatalf("single file: %v", err)
	}
	if len(single) != 1 {
		t.Fatalf("single = %v", single)
	}

	if _, err := CollectInputFiles(filepath.Join(dir, "notes.txt")); err == nil {
		t.Fatal("expected error for non-.nc file")
	}
	empty := t.TempDir()
	if _, err := CollectInputFiles(empty); err == nil {
		t.Fatal("expected error for dir without .nc files")
	}
}
