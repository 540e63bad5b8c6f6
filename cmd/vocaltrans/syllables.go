package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) newSyllablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syllables word...",
		Short: "Show how words split into affixes and syllables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, word := range args {
				m, syls := c.tr.Breakdown(word)
				if len(syls) == 0 {
					fmt.Fprintf(tw, "%s\t-\t\n", word)
					continue
				}
				texts := make([]string, len(syls))
				kinds := make([]string, len(syls))
				for i, s := range syls {
					texts[i] = s.Text
					kinds[i] = s.Kind.String()
				}
				parts := []string{strings.Join(texts, "-")}
				if m.Prefix != "" {
					parts = append([]string{m.Prefix + "+"}, parts...)
				}
				if m.Suffix != "" {
					parts = append(parts, "+"+m.Suffix)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", word, strings.Join(parts, " "), strings.Join(kinds, " "))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print rule table sizes as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(c.tr.Tables().Stats()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
