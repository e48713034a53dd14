package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "sundry",
		Short:         "A workbench of file-processing utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(&configFlag))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	rootCmd.AddCommand(newFfoilCommand(ctx))
	rootCmd.AddCommand(newFofCommand(ctx))

	rootCmd.AddCommand(newNccsvCommand(ctx))
	rootCmd.AddCommand(newMakweiCommand(ctx))
	rootCmd.AddCommand(newAdconvCommand(ctx))
	rootCmd.AddCommand(newVlcCommand(ctx))
	rootCmd.AddCommand(newYldtCommand(ctx))

	rootCmd.AddCommand(newVerbuCommand(ctx))
	rootCmd.AddCommand(newFacmCommand(ctx))

	rootCmd.AddCommand(newHiveCommand(ctx))
	rootCmd.AddCommand(newCordaCommand(ctx))
	rootCmd.AddCommand(newCiklenCommand(ctx))

	rootCmd.AddCommand(newReduceCommand(ctx))
	rootCmd.AddCommand(newMfCommand(ctx))
	rootCmd.AddCommand(newPmovCommand(ctx))
	rootCmd.AddCommand(newCprCommand(ctx))
	rootCmd.AddCommand(newSzCommand(ctx))
	rootCmd.AddCommand(newRplCommand(ctx))
	rootCmd.AddCommand(newRecmdCommand(ctx))

	rootCmd.AddCommand(newRenmCommand(ctx))
	rootCmd.AddCommand(newSufkCommand(ctx))
	rootCmd.AddCommand(newThernamCommand(ctx))
	rootCmd.AddCommand(newPamCommand(ctx))

	rootCmd.AddCommand(newOnizeCommand(ctx))
	rootCmd.AddCommand(newAmCommand(ctx))
	rootCmd.AddCommand(newRstripCommand(ctx))
	rootCmd.AddCommand(newWpruneCommand(ctx))
	rootCmd.AddCommand(newMprCommand(ctx))

	rootCmd.AddCommand(newPpsCommand(ctx))
	rootCmd.AddCommand(newPlsCommand(ctx))

	rootCmd.AddCommand(newArepCommand(ctx))
	rootCmd.AddCommand(newVmdCommand(ctx))
	rootCmd.AddCommand(newAuprCommand(ctx))

	rootCmd.AddCommand(newAvdCommand(ctx))
	rootCmd.AddCommand(newCddCommand(ctx))

	rootCmd.AddCommand(newBpdfCommand(ctx))
	rootCmd.AddCommand(newPdfpCommand(ctx))
	rootCmd.AddCommand(newXectCommand(ctx))

	return rootCmd
}
