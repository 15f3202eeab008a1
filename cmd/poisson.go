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
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/ibpm/InputParameters"
	"github.com/notargets/ibpm/model_problems/Poisson2D"
	"github.com/notargets/ibpm/utils"
)

type ModelPoisson struct {
	ICFile  string
	Profile string
	Verbose bool
}

const exampleFile = `
########################################
Title: "Gaussian Vortex"
Nx: 128
Ny: 64
Length: 2.
XOffset: -1.
YOffset: -0.5
Case: Gaussian # Can be "Sine"
Wavenumber: [1, 1] # Sine mode numbers
Alpha: 0. # Helmholtz coefficient, 0 solves the Poisson problem
ParallelDegree: 0 # 0 = one go routine per CPU
Tolerance: 1.e-12
MaxIterations: 10000
########################################
`

// PoissonCmd represents the poisson command
var PoissonCmd = &cobra.Command{
	Use:   "poisson",
	Short: "Solve for the streamfunction of a vorticity field and cross check the solvers",
	Long: `
Solves -Laplacian(psi) = omega, or (1 - Alpha Laplacian) psi = omega when Alpha > 0,
with psi = 0 on the boundary, by sine transform and by conjugate gradient.

ibpm poisson -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			mp  *ModelPoisson
			ip  *InputParameters.InputParameters2D
		)
		fmt.Println("poisson called")
		if mp, err = newModelPoisson(cmd); err != nil {
			panic(err)
		}
		if ip, err = processInput(mp.ICFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		RunPoisson(mp, ip)
	},
}

func init() {
	rootCmd.AddCommand(PoissonCmd)
	PoissonCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Nx, Ny\n\t- Case")
	PoissonCmd.Flags().String("profile", "", "write a profile to the current directory, cpu or mem")
	PoissonCmd.Flags().BoolP("verbose", "v", false, "print solver configuration")
}

func newModelPoisson(cmd *cobra.Command) (mp *ModelPoisson, err error) {
	mp = &ModelPoisson{}
	if mp.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if mp.Profile, err = cmd.Flags().GetString("profile"); err != nil {
		return
	}
	mp.Verbose, err = cmd.Flags().GetBool("verbose")
	return
}

func processInput(ICFile string) (ip *InputParameters.InputParameters2D, err error) {
	var (
		data []byte
	)
	if len(ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = os.ReadFile(ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return
	}
	ip.SetDefaults()
	if np := viper.GetInt("parallelDegree"); np > 0 {
		ip.ParallelDegree = np
	}
	err = ip.Validate()
	return
}

func RunPoisson(mp *ModelPoisson, ip *InputParameters.InputParameters2D) (sol *Poisson2D.Solution) {
	defer startProfile(mp.Profile)()
	ip.Print()
	start := time.Now()
	c := Poisson2D.NewPoisson(ip, mp.Verbose)
	fmt.Printf("Setup time = %v\n", time.Since(start))
	sol = c.Solve()
	sol.Print()
	fmt.Printf("%s\n", utils.GetMemUsage())
	return
}

func startProfile(kind string) (stop func()) {
	switch strings.ToLower(kind) {
	case "":
		return func() {}
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop
	default:
		panic(fmt.Errorf("unknown profile type \"%s\", must be cpu or mem", kind))
	}
}
