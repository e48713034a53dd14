package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"sundry/internal/fileutil"
	"sundry/internal/renaming"
	"sundry/internal/term"
)

func newRenmCommand(ctx *commandContext) *cobra.Command {
	var (
		mapOutput       string
		restoreMap      string
		ignoreExtension bool
	)

	cmd := &cobra.Command{
		Use:   "renm <directory>",
		Short: "Rename directory entries to 1..N, keeping a reverse map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			out := cmd.OutOrStdout()

			if restoreMap != "" {
				missing, err := renaming.Restore(dir, restoreMap, ignoreExtension)
				if err != nil {
					return err
				}
				for _, name := range missing {
					fmt.Fprintf(out, "missing: %s\n", name)
				}
				fmt.Fprintf(out, "Restored names from %s\n", restoreMap)
				return nil
			}

			ops, err := renaming.PlanSequential(dir, ignoreExtension)
			if err != nil {
				return err
			}
			if err := renaming.CheckConflicts(dir, ops); err != nil {
				return err
			}

			bar := term.NewProgressBar(len(ops), "renaming")
			err = renaming.Apply(dir, ops, func() {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			if err := renaming.SaveMap(ops, mapOutput); err != nil {
				return err
			}
			fmt.Fprintf(out, "Renamed %d entries, map saved to %s\n", len(ops), mapOutput)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mapOutput, "output", "o", "rename_map.json", "Where to write the old-to-new name map")
	cmd.Flags().StringVar(&restoreMap, "restore", "", "Apply a previously saved map in reverse")
	cmd.Flags().BoolVar(&ignoreExtension, "ignore-extension", false, "Use pure numeric names without extensions")
	return cmd
}

func newSufkCommand(ctx *commandContext) *cobra.Command {
	var (
		original string
		examine  string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "sufk <directory>",
		Short: "Copy files whose counterpart with another suffix is missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copied, err := renaming.CopyMissingCounterparts(args[0], original, examine, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d files to %s\n", copied, outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&original, "original", "o", "pdf", "Extension of the files to keep")
	cmd.Flags().StringVarP(&examine, "examine", "e", "txt", "Extension the sibling must have")
	cmd.Flags().StringVar(&outDir, "out", "./filtered", "Directory receiving the copies")
	return cmd
}

func newThernamCommand(ctx *commandContext) *cobra.Command {
	var (
		dir       string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "thernam",
		Short: "Copy student deliverables under standardized names",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = dir
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			files, err := listFiles(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found in %s", dir)
			}

			prompter := term.NewPrompter()
			out := cmd.OutOrStdout()

			studentID, err := prompter.String("student id", "")
			if err != nil {
				return err
			}
			studentName, err := prompter.String("student name", "")
			if err != nil {
				return err
			}

			for i, docType := range renaming.DocTypes {
				if docType == "skip" {
					continue
				}
				fmt.Fprintf(out, "\nDocument type: %s\n", docType)
				for j, name := range files {
					fmt.Fprintf(out, "  %d) %s\n", j+1, name)
				}
				fmt.Fprintln(out, "  0) skip")
				choice, err := prompter.Int("file", 0)
				if err != nil {
					return err
				}
				if choice < 1 || choice > len(files) {
					continue
				}

				source := filepath.Join(dir, files[choice-1])
				target := filepath.Join(outputDir, renaming.DeliverableName(i+1, studentID, studentName, docType, source))
				if err := fileutil.CopyFile(source, target); err != nil {
					return err
				}
				fmt.Fprintf(out, "Copied to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding the submitted files")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination directory (defaults to --dir)")
	return cmd
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
