/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/ibpm/grid"
	"github.com/notargets/ibpm/model_problems/Poisson2D"
)

// IdentitiesCmd represents the identities command
var IdentitiesCmd = &cobra.Command{
	Use:   "identities",
	Short: "Check the discrete vector calculus identities on random fields",
	Long: `
Evaluates the residuals of the discrete curl, divergence, Laplacian and
sine transform identities, all of which should be at roundoff level.

ibpm identities --nx 64 --ny 32
ibpm identities -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			g  *grid.Grid
			np int
		)
		fmt.Println("identities called")
		opts, err := newIdentityOptions(cmd)
		if err != nil {
			panic(err)
		}
		if len(opts.ICFile) != 0 {
			ip, err := processInput(opts.ICFile)
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			g, np = ip.NewGrid(), ip.ParallelDegree
		} else {
			g, np = grid.NewGrid(opts.Nx, opts.Ny, opts.Length, 0, 0), viper.GetInt("parallelDegree")
		}
		if !RunIdentities(g, np, opts.Seed) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(IdentitiesCmd)
	IdentitiesCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters, only the grid is used")
	IdentitiesCmd.Flags().Int("nx", 32, "number of cells in x")
	IdentitiesCmd.Flags().Int("ny", 32, "number of cells in y")
	IdentitiesCmd.Flags().Float64("length", 1, "domain length in x")
	IdentitiesCmd.Flags().Int64("seed", 1, "random number seed")
}

type identityOptions struct {
	ICFile string
	Nx, Ny int
	Length float64
	Seed   int64
}

func newIdentityOptions(cmd *cobra.Command) (opts *identityOptions, err error) {
	var (
		flags = cmd.Flags()
	)
	opts = &identityOptions{}
	if opts.ICFile, err = flags.GetString("inputConditionsFile"); err != nil {
		return
	}
	if opts.Nx, err = flags.GetInt("nx"); err != nil {
		return
	}
	if opts.Ny, err = flags.GetInt("ny"); err != nil {
		return
	}
	if opts.Length, err = flags.GetFloat64("length"); err != nil {
		return
	}
	opts.Seed, err = flags.GetInt64("seed")
	return
}

// RunIdentities prints the identity residuals and reports whether all are
// within tolerance.
func RunIdentities(g *grid.Grid, ProcLimit int, seed int64) (ok bool) {
	id := Poisson2D.CheckIdentities(g, ProcLimit, seed)
	id.Print()
	if ok = id.Max() < 1.e-10; !ok {
		fmt.Printf("identity residual %8.5e exceeds tolerance\n", id.Max())
	}
	return
}
