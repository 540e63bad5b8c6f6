package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vocal-technique/vocaltrans"
)

func (c *cli) newTranslateCmd() *cobra.Command {
	var (
		intensity float64
		noHyphens bool
		upper     bool
	)
	cmd := &cobra.Command{
		Use:   "translate [file...]",
		Short: "Translate lyrics files, or stdin when none are given",
		Long: `Translates each file and prints the results in argument order.
A file named "-" reads stdin.

Example:
  vocaltrans translate --intensity 8 song.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := vocaltrans.Options{
				Hyphenate: c.cfg.Translate.Hyphenate,
				Uppercase: c.cfg.Translate.Uppercase,
			}
			if cmd.Flags().Changed("no-hyphens") {
				opts.Hyphenate = !noHyphens
			}
			if cmd.Flags().Changed("upper") {
				opts.Uppercase = upper
			}
			if !cmd.Flags().Changed("intensity") {
				intensity = c.cfg.Translate.Intensity
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			return c.translateFiles(cmd, args, intensity, opts)
		},
	}
	cmd.Flags().Float64VarP(&intensity, "intensity", "i", 5, "intensity from 1 to 10")
	cmd.Flags().BoolVar(&noHyphens, "no-hyphens", false, "join syllables without hyphens")
	cmd.Flags().BoolVar(&upper, "upper", false, "upper-case the output")
	return cmd
}

// translateFiles translates the inputs concurrently and writes them out in
// argument order. stdin is read at most once.
func (c *cli) translateFiles(cmd *cobra.Command, paths []string, intensity float64, opts vocaltrans.Options) error {
	var stdin []byte
	for _, p := range paths {
		if p == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			stdin = data
			break
		}
	}

	out := make([]string, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text := string(stdin)
			if p != "-" {
				data, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				text = string(data)
			}
			out[i] = c.tr.Translate(text, intensity, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, s := range out {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}
