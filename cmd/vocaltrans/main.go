// Command vocaltrans translates lyrics from files or stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocal-technique/vocaltrans"
	"github.com/vocal-technique/vocaltrans/internal/config"
)

// cli holds flag values shared by the subcommands.
type cli struct {
	configPath string
	tablesDir  string

	cfg config.Config
	tr  *vocaltrans.Translator
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "vocaltrans",
		Short: "Rewrite lyrics into open-throat phonetic spellings",
		Long: `vocaltrans rewrites song lyrics into singable phonetic spellings.

Intensity runs from 1 (spelling kept) to 10 (every open-throat
substitution). Settings are read from --config and VOCALTRANS_*
environment variables; flags win over both.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.tablesDir, "tables", "", "directory of rule tables replacing the embedded ones")

	root.AddCommand(c.newTranslateCmd(), c.newSyllablesCmd(), c.newTablesCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.Option
	if c.configPath != "" {
		opts = append(opts, config.WithFile(c.configPath), config.WithRequiredFile())
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tables") {
		cfg.Translate.TablesDir = c.tablesDir
	}
	tr, err := vocaltrans.OpenDir(cfg.Translate.TablesDir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	c.cfg, c.tr = cfg, tr
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
