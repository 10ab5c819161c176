package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

var (
	initForce bool
	initPath  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a folio.yaml with the default settings",
	Long: `Write a folio.yaml with every setting at its default value. Flags
such as --content are written into the file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		if contentRoot != "" {
			cfg.Content.Root = contentRoot
		}

		path := initPath
		if path == "" {
			path = cfgFile
		}
		if path == "" {
			path = config.DefaultFileName
		}

		if err := config.WriteFile(path, cfg, initForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	initCmd.Flags().StringVarP(&initPath, "path", "o", "", "where to write the file (default ./folio.yaml)")
}
