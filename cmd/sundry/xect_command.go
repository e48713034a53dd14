package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sundry/internal/archconv"
	"sundry/internal/services/garbro"
	"sundry/internal/term"
)

func newXectCommand(ctx *commandContext) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "xect",
		Short: "Extract and convert game archives with GARbro",
	}
	cmd.PersistentFlags().StringVarP(&root, "garbro-root", "b", "", "GARbro install directory (defaults to $GARBRO_ROOT, then the config)")

	client := func() (*garbro.Client, error) {
		r := root
		if r == "" {
			r = os.Getenv("GARBRO_ROOT")
		}
		return ctx.garbroClient(r)
	}

	cmd.AddCommand(newXectAllCommand(ctx, client))
	cmd.AddCommand(newXectTopCommand(ctx, client))
	cmd.AddCommand(newXectUICommand(client))
	cmd.AddCommand(newXectICCommand(client))
	return cmd
}

func newXectAllCommand(ctx *commandContext, client func() (*garbro.Client, error)) *cobra.Command {
	var (
		extension string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "all [root ...]",
		Short: "Extract every archive under the roots and convert the images to PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}
			c, err := client()
			if err != nil {
				return err
			}
			bar := term.NewProgressBar(-1, "extracting")
			err = archconv.ExtractAll(cmd.Context(), c, archconv.ExtractOptions{
				Roots:     roots,
				Extension: extension,
				OutputDir: outputDir,
				Logger:    ctx.logger(),
				Progress:  func() { _ = bar.Add(1) },
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Images written to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&extension, "extension", "e", "dpak", "Archive extension to search for")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./output", "Directory for the converted images")
	return cmd
}

func newXectTopCommand(ctx *commandContext, client func() (*garbro.Client, error)) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "top <source-dir>",
		Short: "Convert the images in a directory to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			bar := term.NewProgressBar(-1, "converting")
			err = archconv.ConvertDir(cmd.Context(), c, args[0], outputDir, ctx.logger(), func() { _ = bar.Add(1) })
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Images written to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./", "Directory for the converted images")
	return cmd
}

func newXectUICommand(client func() (*garbro.Client, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ui <file>",
		Short: "Open a file in the GARbro GUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.LaunchGUI(cmd.Context(), args[0])
		},
	}
}

func newXectICCommand(client func() (*garbro.Client, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ic",
		Short: "Open the GARbro image converter",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			return c.LaunchImageConverter(cmd.Context())
		},
	}
}
