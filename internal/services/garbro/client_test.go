package garbro_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"sundry/internal/execx"
	"sundry/internal/services/garbro"
)

type stubExecutor struct {
	specs []execx.Spec
}

func (s *stubExecutor) Run(_ context.Context, spec execx.Spec, _ func(string)) error {
	s.specs = append(s.specs, spec)
	return nil
}

func TestExtractRunsConsoleInDest(t *testing.T) {
	stub := &stubExecutor{}
	client, err := garbro.New("/opt/garbro", garbro.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Extract(context.Background(), "game.dpak", "/tmp/scratch"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	spec := stub.specs[0]
	if spec.Binary != filepath.Join("/opt/garbro", "GARbro.Console.exe") {
		t.Fatalf("binary = %q", spec.Binary)
	}
	if strings.Join(spec.Args, " ") != "-x game.dpak" {
		t.Fatalf("args = %v", spec.Args)
	}
	if spec.Dir != "/tmp/scratch" {
		t.Fatalf("dir = %q", spec.Dir)
	}
}

func TestConvertToPNGArgs(t *testing.T) {
	stub := &stubExecutor{}
	client, err := garbro.New("/opt/garbro", garbro.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.ConvertToPNG(context.Background(), "pic.tlg", "/tmp/out"); err != nil {
		t.Fatalf("ConvertToPNG: %v", err)
	}
	spec := stub.specs[0]
	if strings.Join(spec.Args, " ") != "-t PNG pic.tlg" {
		t.Fatalf("args = %v", spec.Args)
	}
	if filepath.Base(spec.Binary) != "Image.Convert.exe" {
		t.Fatalf("binary = %q", spec.Binary)
	}
}
