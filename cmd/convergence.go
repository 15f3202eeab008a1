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

	"github.com/notargets/ibpm/InputParameters"
	"github.com/notargets/ibpm/model_problems/Poisson2D"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Grid refinement study of the Poisson solver against the analytic sine mode",
	Long: `
Solves the Sine case on a sequence of grids with the aspect ratio of the input
file and reports the observed order of accuracy, optionally as CSV.

ibpm convergence -I input.yaml --sizes 16,32,64,128 --csvFile study.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err             error
			ip              *InputParameters.InputParameters2D
			ICFile, csvFile string
			sizes           []int
		)
		fmt.Println("convergence called")
		if ICFile, sizes, csvFile, err = convergenceFlags(cmd); err != nil {
			panic(err)
		}
		if ip, err = processInput(ICFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = RunConvergence(ip, sizes, csvFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters, Case must be Sine")
	ConvergenceCmd.Flags().IntSlice("sizes", []int{16, 32, 64, 128}, "Nx of each grid in the study")
	ConvergenceCmd.Flags().String("csvFile", "", "write the study to this CSV file")
}

func convergenceFlags(cmd *cobra.Command) (ICFile string, sizes []int, csvFile string, err error) {
	if ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if sizes, err = cmd.Flags().GetIntSlice("sizes"); err != nil {
		return
	}
	csvFile, err = cmd.Flags().GetString("csvFile")
	return
}

func RunConvergence(ip *InputParameters.InputParameters2D, sizes []int, csvFile string) (err error) {
	var (
		f *os.File
	)
	cs := Poisson2D.RunConvergenceStudy(ip, sizes)
	cs.Print()
	if len(csvFile) == 0 {
		return
	}
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	defer f.Close()
	return cs.WriteCSV(f)
}
