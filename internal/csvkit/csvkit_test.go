package csvkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReadAndColumnLookup(t *testing.T) {
	input := "name,length,url\na,01:30,http://x\nb,00:45,http://y\n"
	table, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(table.Records))
	}

	idx, err := table.ColumnIndex("length")
	if err != nil {
		t.Fatalf("ColumnIndex: %v", err)
	}
	if idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}

	urls, err := table.Column("url")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(urls) != 2 || urls[0] != "http://x" || urls[1] != "http://y" {
		t.Fatalf("urls = %v", urls)
	}

	if _, err := table.ColumnIndex("missing"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	header := []string{"a", "b"}
	records := [][]string{{"1", "2"}, {"3", "4"}}

	if err := WriteFile(path, header, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(table.Header) != 2 || table.Header[0] != "a" {
		t.Fatalf("header = %v", table.Header)
	}
	if len(table.Records) != 2 || table.Records[1][1] != "4" {
		t.Fatalf("records = %v", table.Records)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(empty); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"12:34", 12*time.Minute + 34*time.Second},
		{"00:00:59", 59 * time.Second},
		{"runtime 02:30 total", 2*time.Minute + 30*time.Second},
	}
	for _, tt := range tests {
		got, err := ParseClockDuration(tt.in)
		if err != nil {
			t.Fatalf("ParseClockDuration(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseClockDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "90", "1:2", "abc"} {
		if _, err := ParseClockDuration(bad); err == nil {
			t.Fatalf("ParseClockDuration(%q): expected error", bad)
		}
	}
}

func TestIntervals(t *testing.T) {
	ivs, err := ParseIntervals("0:60,60:180")
	if err != nil {
		t.Fatalf("ParseIntervals: %v", err)
	}
	if len(ivs) != 2 {
		t.Fatalf("intervals = %d, want 2", len(ivs))
	}

	// Membership excludes the lower bound and includes the upper.
	if _, ok := ivs.Match(0); ok {
		t.Fatal("0 should not match")
	}
	iv, ok := ivs.Match(60)
	if !ok || iv.String() != "0-60" {
		t.Fatalf("Match(60) = %v, %v", iv, ok)
	}
	iv, ok = ivs.Match(61)
	if !ok || iv.String() != "60-180" {
		t.Fatalf("Match(61) = %v, %v", iv, ok)
	}
	if _, ok := ivs.Match(500); ok {
		t.Fatal("500 should not match")
	}

	if _, err := ParseIntervals("10"); err == nil {
		t.Fatal("expected error for missing colon")
	}
	if _, err := ParseIntervals("a:b"); err == nil {
		t.Fatal("expected error for non-numeric bounds")
	}
}
