package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sundry/internal/folders"
	"sundry/internal/term"
	"sundry/internal/textutil"
)

func newMfCommand(ctx *commandContext) *cobra.Command {
	var (
		create    bool
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "mf <src> <dst>",
		Short: "Merge similarly-named folders from src into dst",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcRoot, dstRoot := args[0], args[1]
			srcDirs, err := subfolderNames(srcRoot)
			if err != nil {
				return err
			}
			dstDirs, err := subfolderNames(dstRoot)
			if err != nil {
				return err
			}

			prompter := term.NewPrompter()
			out := cmd.OutOrStdout()
			for _, src := range srcDirs {
				matches := folders.FindMatches(src, dstDirs, threshold)
				if len(matches) == 0 {
					ok := create
					if !ok {
						ok, err = prompter.Confirm(
							fmt.Sprintf("No match for [%s] in [%s]. Create a new folder?", src, dstRoot), false)
						if err != nil {
							return err
						}
					}
					if !ok {
						continue
					}
					if err := folders.MergeInto(filepath.Join(srcRoot, src), filepath.Join(dstRoot, src)); err != nil {
						return err
					}
					fmt.Fprintf(out, "Created %s\n", filepath.Join(dstRoot, src))
					continue
				}

				fmt.Fprintf(out, "Move %s to:\n", src)
				for i, match := range matches {
					fmt.Fprintf(out, "  %d) %d%% | %s\n", i+1, match.Score, match.Name)
				}
				fmt.Fprintf(out, "  0) skip\n")
				choice, err := prompter.Int("choice", 0)
				if err != nil {
					return err
				}
				if choice < 1 || choice > len(matches) {
					continue
				}
				target := matches[choice-1].Name
				if err := folders.MergeInto(filepath.Join(srcRoot, src), filepath.Join(dstRoot, target)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Merged %s into %s\n", src, target)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "Create missing destination folders without asking")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.6, "Similarity threshold for matches")
	return cmd
}

func subfolderNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	textutil.SortNatural(names)
	return names, nil
}
