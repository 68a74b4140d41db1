package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"ppreduce/pkg/problem"
)

func (a *app) reduceCmd() *cobra.Command {
	var (
		jobs   int
		format string
		digest bool
	)
	cmd := &cobra.Command{
		Use:   "reduce FILE...",
		Short: "Reduce the ideals of one or more problem files",
		Long: `Reads every problem file, computes the initially reduced form of its
ideal and prints the results in the order the files were given.

Files are solved concurrently, up to --jobs at a time. The first failure
stops the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want text or yaml", format)
			}
			if jobs < 1 {
				return fmt.Errorf("--jobs = %d, want at least 1", jobs)
			}
			sols, err := a.solveAll(cmd, args, jobs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case digest:
				for _, s := range sols {
					fmt.Fprintf(out, "%s  %s\n", s.Fingerprint, s.Name)
				}
				return nil
			case format == "yaml":
				enc := yaml.NewEncoder(out)
				if err := enc.Encode(sols); err != nil {
					return err
				}
				return enc.Close()
			}
			return writeText(out, sols)
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files solved in parallel")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	cmd.Flags().BoolVar(&digest, "digest", false, "Print only the fingerprint of each result")
	return cmd
}

func (a *app) solveAll(cmd *cobra.Command, paths []string, jobs int) ([]*problem.Solution, error) {
	sols := make([]*problem.Solution, len(paths))
	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(jobs)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pr, err := problem.Load(path)
			if err != nil {
				return err
			}
			sol, err := problem.Solve(pr, a.logger)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			sols[i] = sol
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sols, nil
}

func writeText(w io.Writer, sols []*problem.Solution) error {
	for i, s := range sols {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n", s.Name); err != nil {
			return err
		}
		for _, g := range s.Generators {
			if _, err := fmt.Fprintln(w, g); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "fingerprint: %s\n", s.Fingerprint); err != nil {
			return err
		}
	}
	return nil
}
