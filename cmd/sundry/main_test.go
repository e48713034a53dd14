package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with the given args and a config path
// pointing into a temp dir, so host configuration never leaks in.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "no-config.toml")
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateWithoutFileUsesDefaults(t *testing.T) {
	out, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")
}

func TestHiveCountsCitationKeys(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "thesis.typ")
	content := "intro #cite(<smith2020>) body #cite(<jones1999>) more #cite(<smith2020>)"
	if err := os.WriteFile(doc, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, []string{"hive", doc}, "")
	if err != nil {
		t.Fatalf("hive: %v", err)
	}
	requireContains(t, out, "<smith2020>")
	requireContains(t, out, "<jones1999>")
	requireContains(t, out, "3 citations, 2 distinct keys")
}

func TestCordaWritesSortedCopy(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "thesis.typ")
	content := "#cite(<a>) text #cite(<b>)#cite(<a>)"
	if err := os.WriteFile(doc, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "sorted.typ")

	if _, err := runCLI(t, []string{"corda", doc, "--output", target}, ""); err != nil {
		t.Fatalf("corda: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	want := "#cite(<a>) text #cite(<a>)#cite(<b>)"
	if string(got) != want {
		t.Fatalf("sorted content = %q, want %q", got, want)
	}
}

func TestCordaRequiresOutputOrInplace(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "thesis.typ")
	if err := os.WriteFile(doc, []byte("#cite(<a>)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, []string{"corda", doc}, ""); err == nil {
		t.Fatal("expected an error without --output or --inplace")
	}
}

func TestFofFiltersAirfoilResults(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.csv")
	csv := strings.Join([]string{
		"naca,cl_at_best_aoa,cd_at_best_aoa",
		"2412,1.2,0.01",
		"0006,0.1,0.01",
		"4424,1.0,0.5",
		"",
	}, "\n")
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "filtered.csv")

	out, err := runCLI(t, []string{"fof", input, "--output", output}, "")
	if err != nil {
		t.Fatalf("fof: %v", err)
	}
	requireContains(t, out, "Kept 1 airfoils")

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "2412") || strings.Contains(string(got), "0006") {
		t.Fatalf("filtered output = %q", got)
	}
}
