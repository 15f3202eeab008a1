package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/ibpm/grid"
)

func writeInput(t *testing.T, text string) (fileName string) {
	fileName = filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(text), 0644))
	return
}

func TestProcessInput(t *testing.T) {
	{ // Example file parses and validates
		ip, err := processInput(writeInput(t, exampleFile))
		require.NoError(t, err)
		assert.Equal(t, "Gaussian Vortex", ip.Title)
		assert.Equal(t, [2]int{128, 64}, [2]int{ip.Nx, ip.Ny})
		assert.Equal(t, -0.5, ip.YOffset)
		assert.Equal(t, 10000, ip.MaxIterations)
		g := ip.NewGrid()
		assert.Equal(t, 1., g.Height())
	}
	{ // Defaults fill in what the file leaves out, the flag overrides the file
		viper.Set("parallelDegree", 3)
		defer viper.Set("parallelDegree", 0)
		ip, err := processInput(writeInput(t, "Nx: 16\nNy: 8\nParallelDegree: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, "Sine", ip.Case)
		assert.Equal(t, 1., ip.Length)
		assert.Equal(t, [2]int{1, 1}, ip.Wavenumber)
		assert.Equal(t, 3, ip.ParallelDegree)
	}
	{ // Errors
		_, err := processInput("")
		assert.Error(t, err)
		_, err = processInput(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		_, err = processInput(writeInput(t, "Nx: 16\nNy: 1\n"))
		assert.Error(t, err)
		_, err = processInput(writeInput(t, "Nx: [16\n"))
		assert.Error(t, err)
	}
}

func TestRunPoisson(t *testing.T) {
	ip, err := processInput(writeInput(t, "Title: Test\nNx: 24\nNy: 16\nCase: Sine\nWavenumber: [2, 1]\n"))
	require.NoError(t, err)
	sol := RunPoisson(&ModelPoisson{}, ip)
	require.NoError(t, sol.CGErr)
	assert.True(t, sol.MaxDifference < 1.e-8)
	assert.True(t, sol.MaxError < 1.e-2)

	assert.True(t, RunIdentities(grid.NewGrid(12, 10, 1., 0, 0), 2, 3))

	assert.NotPanics(t, func() { startProfile("")() })
	assert.Panics(t, func() { startProfile("gpu") })
}

func TestRunConvergence(t *testing.T) {
	ip, err := processInput(writeInput(t, "Title: Study\nNx: 8\nNy: 8\n"))
	require.NoError(t, err)
	csvFile := filepath.Join(t.TempDir(), "study.csv")
	require.NoError(t, RunConvergence(ip, []int{8, 16}, csvFile))
	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Nx,MaxError,RMSError,Order")
	assert.Error(t, RunConvergence(ip, []int{8}, filepath.Join(t.TempDir(), "missing", "study.csv")))
}

func TestCommandFlags(t *testing.T) {
	{ // Defaults
		mp, err := newModelPoisson(PoissonCmd)
		require.NoError(t, err)
		assert.Equal(t, ModelPoisson{}, *mp)
		opts, err := newIdentityOptions(IdentitiesCmd)
		require.NoError(t, err)
		assert.Equal(t, identityOptions{Nx: 32, Ny: 32, Length: 1, Seed: 1}, *opts)
		ICFile, sizes, csvFile, err := convergenceFlags(ConvergenceCmd)
		require.NoError(t, err)
		assert.Equal(t, "", ICFile+csvFile)
		assert.Equal(t, []int{16, 32, 64, 128}, sizes)
	}
	{ // Parsed values reach the command
		cmd := &cobra.Command{}
		cmd.Flags().AddFlagSet(PoissonCmd.Flags())
		cmd.Flags().Set("profile", "cpu")
		cmd.Flags().Set("verbose", "true")
		defer func() {
			PoissonCmd.Flags().Set("profile", "")
			PoissonCmd.Flags().Set("verbose", "false")
		}()
		mp, err := newModelPoisson(cmd)
		require.NoError(t, err)
		assert.Equal(t, "cpu", mp.Profile)
		assert.True(t, mp.Verbose)
	}
	{ // A missing or mistyped flag is an error, not a zero value
		cmd := &cobra.Command{}
		cmd.Flags().String("inputConditionsFile", "", "")
		_, err := newModelPoisson(cmd)
		assert.Error(t, err)
		cmd.Flags().Int("profile", 0, "")
		_, err = newModelPoisson(cmd)
		assert.Error(t, err)
		_, err = newIdentityOptions(cmd)
		assert.Error(t, err)
		_, _, _, err = convergenceFlags(cmd)
		assert.Error(t, err)
	}
}
