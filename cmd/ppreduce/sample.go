package main

import (
	"github.com/spf13/cobra"

	"ppreduce/pkg/problem"
	"ppreduce/pkg/sampling"
)

func (a *app) sampleCmd() *cobra.Command {
	var (
		seed   string
		name   string
		params = sampling.DefaultParams()
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a random problem file",
		Long: `Samples a space-homogeneous integer ideal containing p - t from a
SHAKE-128 stream keyed by --seed and prints it as a problem file.

Example:
  ppreduce sample --seed 42 --vars 3 --degrees 1,2,3 > p.yaml
  ppreduce reduce p.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := problem.FromSample(name, []byte(seed), params)
			if err != nil {
				return err
			}
			data, err := pr.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "ppreduce", "Seed of the sampling stream")
	cmd.Flags().StringVar(&name, "name", "", "Problem name")
	cmd.Flags().IntVar(&params.Vars, "vars", params.Vars, "Number of space variables")
	cmd.Flags().IntSliceVar(&params.Degrees, "degrees", params.Degrees, "Space degree of each stratum")
	cmd.Flags().IntVar(&params.Gens, "gens", params.Gens, "Generators per stratum")
	cmd.Flags().IntVar(&params.Terms, "terms", params.Terms, "Terms per generator")
	cmd.Flags().Int64Var(&params.P, "p", params.P, "Uniformizer")
	cmd.Flags().IntVar(&params.MaxT, "max-t", params.MaxT, "Largest t exponent of a sampled term")
	return cmd
}
