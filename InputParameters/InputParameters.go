package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/ibpm/grid"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title          string  `yaml:"Title"`
	Nx             int     `yaml:"Nx"`
	Ny             int     `yaml:"Ny"`
	Length         float64 `yaml:"Length"` // Domain length in x, dx = Length/Nx
	XOffset        float64 `yaml:"XOffset"`
	YOffset        float64 `yaml:"YOffset"`
	Case           string  `yaml:"Case"`       // Sine or Gaussian
	Wavenumber     [2]int  `yaml:"Wavenumber"` // Sine mode numbers in x and y
	Alpha          float64 `yaml:"Alpha"`      // Helmholtz coefficient, 0 for Poisson
	ParallelDegree int     `yaml:"ParallelDegree"`
	Tolerance      float64 `yaml:"Tolerance"` // Conjugate gradient relative residual
	MaxIterations  int     `yaml:"MaxIterations"`
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// SetDefaults fills in the optional parameters left out of the input file
func (ip *InputParameters2D) SetDefaults() {
	if len(ip.Case) == 0 {
		ip.Case = "Sine"
	}
	if ip.Length == 0 {
		ip.Length = 1
	}
	if ip.Wavenumber == [2]int{} {
		ip.Wavenumber = [2]int{1, 1}
	}
	if ip.Tolerance == 0 {
		ip.Tolerance = 1.e-12
	}
	if ip.MaxIterations == 0 {
		ip.MaxIterations = 10000
	}
}

func (ip *InputParameters2D) Validate() (err error) {
	switch {
	case ip.Nx < 2 || ip.Ny < 2:
		err = fmt.Errorf("Nx and Ny must be at least 2 to have interior nodes, have %d, %d", ip.Nx, ip.Ny)
	case ip.Length <= 0:
		err = fmt.Errorf("Length must be positive, have %v", ip.Length)
	case strings.ToLower(ip.Case) != "sine" && strings.ToLower(ip.Case) != "gaussian":
		err = fmt.Errorf("unknown Case \"%s\", must be Sine or Gaussian", ip.Case)
	case ip.Wavenumber[0] < 1 || ip.Wavenumber[0] >= ip.Nx || ip.Wavenumber[1] < 1 || ip.Wavenumber[1] >= ip.Ny:
		err = fmt.Errorf("Wavenumber %v must lie in [1,Nx-1] x [1,Ny-1]", ip.Wavenumber)
	case ip.Alpha < 0:
		err = fmt.Errorf("Alpha must be non negative, have %v", ip.Alpha)
	case ip.ParallelDegree < 0:
		err = fmt.Errorf("ParallelDegree must be non negative, have %d", ip.ParallelDegree)
	}
	return
}

func (ip *InputParameters2D) NewGrid() *grid.Grid {
	return grid.NewGrid(ip.Nx, ip.Ny, ip.Length, ip.XOffset, ip.YOffset)
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d, %d]\t\t\t= Nx, Ny\n", ip.Nx, ip.Ny)
	fmt.Printf("%8.5f\t\t= Length\n", ip.Length)
	fmt.Printf("(%8.5f,%8.5f)\t= Offset\n", ip.XOffset, ip.YOffset)
	fmt.Printf("[%s]\t\t\t= Case\n", ip.Case)
	fmt.Printf("%v\t\t\t= Wavenumber\n", ip.Wavenumber)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree (0 = NumCPU)\n", ip.ParallelDegree)
	fmt.Printf("%8.2e\t\t= CG Tolerance\n", ip.Tolerance)
	fmt.Printf("[%d]\t\t\t= CG Max Iterations\n", ip.MaxIterations)
}
