package renaming

import (
	"os"
	"path/filepath"
	"testing"
)

func seedFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPlanSequentialKeepsExtensions(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "banana.txt", "apple.md", "cherry")

	ops, err := PlanSequential(dir, false)
	if err != nil {
		t.Fatalf("PlanSequential: %v", err)
	}
	want := []Op{
		{OldName: "apple.md", NewName: "1.md"},
		{OldName: "banana.txt", NewName: "2.txt"},
		{OldName: "cherry", NewName: "3"},
	}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %+v, want %+v", i, ops[i], want[i])
		}
	}
}

func TestPlanSequentialNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "page10.txt", "page2.txt", "page1.txt")

	ops, err := PlanSequential(dir, false)
	if err != nil {
		t.Fatalf("PlanSequential: %v", err)
	}
	want := []Op{
		{OldName: "page1.txt", NewName: "1.txt"},
		{OldName: "page2.txt", NewName: "2.txt"},
		{OldName: "page10.txt", NewName: "3.txt"},
	}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %+v, want %+v", i, ops[i], want[i])
		}
	}
}

func TestPlanSequentialIgnoreExtension(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "a.txt", "b.txt")

	ops, err := PlanSequential(dir, true)
	if err != nil {
		t.Fatalf("PlanSequential: %v", err)
	}
	if ops[0].NewName != "1" || ops[1].NewName != "2" {
		t.Fatalf("ops = %v", ops)
	}
}

func TestCheckConflicts(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "z.txt", "1.txt")

	// "1.txt" is both a source and the first target, which is fine; but the
	// plan also wants "2.txt" which is free.
	ops, err := PlanSequential(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckConflicts(dir, ops); err != nil {
		t.Fatalf("CheckConflicts: %v", err)
	}

	seedFiles(t, dir, "2.txt")
	ops = []Op{{OldName: "z.txt", NewName: "2.txt"}}
	if err := CheckConflicts(dir, ops); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestRenameAndRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "beta.txt", "alpha.txt")
	mapPath := filepath.Join(t.TempDir(), "rename_map.json")

	ops, err := PlanSequential(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckConflicts(dir, ops); err != nil {
		t.Fatal(err)
	}
	if err := Apply(dir, ops, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := SaveMap(ops, mapPath); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	for _, name := range []string{"1.txt", "2.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s missing after rename: %v", name, err)
		}
	}

	missing, err := Restore(dir, mapPath, false)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing = %v", missing)
	}
	data, err := os.ReadFile(filepath.Join(dir, "alpha.txt"))
	if err != nil || string(data) != "alpha.txt" {
		t.Fatalf("alpha.txt = %q %v", data, err)
	}
}

func TestRestoreReportsMissing(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(mapPath, []byte(`{"orig.txt":"1.txt"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	missing, err := Restore(dir, mapPath, false)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(missing) != 1 || missing[0] != "1.txt" {
		t.Fatalf("missing = %v", missing)
	}
}

func TestRestoreIgnoreExtensionFindsAnyExt(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "1.pdf")
	mapPath := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(mapPath, []byte(`{"report.pdf":"1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	missing, err := Restore(dir, mapPath, true)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing = %v", missing)
	}
	if _, err := os.Stat(filepath.Join(dir, "report.pdf")); err != nil {
		t.Fatalf("restored file: %v", err)
	}
}

func TestCopyMissingCounterparts(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "filtered")
	seedFiles(t, dir, "done.pdf", "done.txt", "todo.pdf", "notes.md")

	copied, err := CopyMissingCounterparts(dir, "pdf", "txt", out)
	if err != nil {
		t.Fatalf("CopyMissingCounterparts: %v", err)
	}
	if copied != 1 {
		t.Fatalf("copied = %d, want 1", copied)
	}
	if _, err := os.Stat(filepath.Join(out, "todo.pdf")); err != nil {
		t.Fatalf("todo.pdf not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "done.pdf")); !os.IsNotExist(err) {
		t.Fatal("done.pdf should not be copied")
	}
}

func TestDeliverableName(t *testing.T) {
	got := DeliverableName(3, "20250101", "张三", "开题报告", "/tmp/draft.docx")
	if got != "3-20250101张三[开题报告].docx" {
		t.Fatalf("DeliverableName = %q", got)
	}
	got = DeliverableName(1, "id", "name", "skip", "/tmp/noext")
	if got != "1-idname[skip]" {
		t.Fatalf("DeliverableName = %q", got)
	}
}
