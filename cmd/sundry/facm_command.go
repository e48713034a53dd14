package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sundry/internal/modkit"
)

func newFacmCommand(ctx *commandContext) *cobra.Command {
	facmCmd := &cobra.Command{
		Use:   "facm",
		Short: "Factorio mod archive management",
	}
	facmCmd.AddCommand(newFacmMoveCommand(ctx))
	facmCmd.AddCommand(newFacmListCommand(ctx))
	facmCmd.AddCommand(newFacmExportCommand(ctx))
	facmCmd.AddCommand(newFacmImportCommand(ctx))
	facmCmd.AddCommand(newFacmInstallCommand(ctx))
	return facmCmd
}

func (c *commandContext) modManager() (*modkit.Manager, error) {
	archiver, err := c.sevenZipClient()
	if err != nil {
		return nil, err
	}
	return &modkit.Manager{Archiver: archiver, Logger: c.logger()}, nil
}

func newFacmMoveCommand(ctx *commandContext) *cobra.Command {
	var modsDir, outputDir string

	cmd := &cobra.Command{
		Use:     "move",
		Aliases: []string{"m"},
		Short:   "Move superseded mod versions to the old-mods directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.modManager()
			if err != nil {
				return err
			}
			cfg := ctx.configValue()
			if modsDir == "" {
				modsDir = cfg.Paths.ModsDir
			}
			if outputDir == "" {
				outputDir = cfg.Paths.OldModsDir
			}

			moved, err := manager.MoveSuperseded(modsDir, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d superseded archives to %s\n", len(moved), outputDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modsDir, "mods-dir", "m", "", "Mods directory (defaults to config)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination for superseded archives (defaults to config)")
	return cmd
}

func newFacmListCommand(ctx *commandContext) *cobra.Command {
	var modsDir string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List installed mod archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modsDir == "" {
				modsDir = ctx.configValue().Paths.ModsDir
			}
			entries, err := modkit.Scan(modsDir)
			if err != nil {
				return err
			}
			latest := modkit.RetainLatest(entries)

			sort.Slice(entries, func(i, j int) bool {
				if entries[i].Name != entries[j].Name {
					return entries[i].Name < entries[j].Name
				}
				return entries[i].Version.LessThan(entries[j].Version)
			})
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				state := ""
				if latest[entry.Name].Path == entry.Path {
					state = "latest"
				}
				rows = append(rows, []string{entry.Name, entry.Version.String(), state})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Mod", "Version", ""},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&modsDir, "mods-dir", "m", "", "Mods directory (defaults to config)")
	return cmd
}

func newFacmExportCommand(ctx *commandContext) *cobra.Command {
	var (
		modsDir         string
		outputZip       string
		includeSettings bool
	)

	cmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"e"},
		Short:   "Archive the mods enabled in mod-list.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.modManager()
			if err != nil {
				return err
			}
			if modsDir == "" {
				modsDir = ctx.configValue().Paths.ModsDir
			}
			if err := manager.Export(cmd.Context(), modsDir, outputZip, includeSettings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported enabled mods to %s\n", outputZip)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modsDir, "mods-dir", "m", "", "Mods directory (defaults to config)")
	cmd.Flags().StringVarP(&outputZip, "output-zip", "o", "./enabled_mods.zip", "Output zip file path")
	cmd.Flags().BoolVarP(&includeSettings, "include-settings", "s", false, "Include mod-settings.dat in the zip")
	return cmd
}

func newFacmImportCommand(ctx *commandContext) *cobra.Command {
	var modsDir, inputZip string

	cmd := &cobra.Command{
		Use:     "import",
		Aliases: []string{"i"},
		Short:   "Unpack a mods zip into the mods directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.modManager()
			if err != nil {
				return err
			}
			if modsDir == "" {
				modsDir = ctx.configValue().Paths.ModsDir
			}
			if err := manager.Import(cmd.Context(), inputZip, modsDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", inputZip, modsDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modsDir, "mods-dir", "m", "", "Mods directory (defaults to config)")
	cmd.Flags().StringVarP(&inputZip, "input-zip", "i", "", "Input zip file path")
	_ = cmd.MarkFlagRequired("input-zip")
	return cmd
}

func newFacmInstallCommand(ctx *commandContext) *cobra.Command {
	var modsDir string

	cmd := &cobra.Command{
		Use:     "install <file|dir|url>",
		Aliases: []string{"in"},
		Short:   "Install a mod from a zip file, a source folder, or a URL",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := ctx.modManager()
			if err != nil {
				return err
			}
			if modsDir == "" {
				modsDir = ctx.configValue().Paths.ModsDir
			}
			source := strings.TrimSpace(args[0])
			if err := manager.Install(cmd.Context(), source, modsDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", source)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modsDir, "mods-dir", "m", "", "Mods directory (defaults to config)")
	return cmd
}
