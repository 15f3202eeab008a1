package utils

import (
	"math"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestPartitionMap(t *testing.T) {
	{ // Bucket sizes
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets tile the index range in order
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			next := 0
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				assert.Equal(t, next, kMin)
				assert.Equal(t, kMax-kMin, pm.GetBucketDimension(np))
				next = kMax
			}
			assert.Equal(t, maxIndex, next)
			assert.Equal(t, maxIndex, pm.GetBucketDimension(-1))
		}
	}
}

func TestParallelDegree(t *testing.T) {
	assert.Equal(t, 3, ParallelDegree(3, 100))
	assert.Equal(t, 7, ParallelDegree(32, 7))
	assert.Equal(t, 1, ParallelDegree(4, 0))
	assert.Equal(t, min(runtime.NumCPU(), 1000), ParallelDegree(0, 1000))
}

func TestExecute(t *testing.T) {
	{ // Every index is visited exactly once
		for _, np := range []int{1, 3, 8, 40} {
			var (
				pm     = NewPartitionMap(np, 37)
				visits = make([]int, 37)
				mu     sync.Mutex
				calls  int
			)
			pm.Execute(func(n, kMin, kMax int) {
				for k := kMin; k < kMax; k++ {
					visits[k]++
				}
				mu.Lock()
				calls++
				mu.Unlock()
			})
			for k := range visits {
				assert.Equal(t, 1, visits[k])
			}
			assert.Equal(t, min(np, 37), calls) // Empty buckets are skipped
		}
	}
	{ // Nothing to do
		called := false
		NewPartitionMap(4, 0).Execute(func(n, kMin, kMax int) { called = true })
		assert.False(t, called)
	}
}

func TestIsNan(t *testing.T) {
	assert.True(t, IsNan(math.NaN()))
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan([]float64{0, math.NaN()}))
	assert.False(t, IsNan([]float64{0, 1}))
	assert.False(t, IsNan(float32(1))) // Unsupported types are never NaN
	assert.True(t, IsNan(mat.NewDense(2, 2, []float64{0, 0, math.NaN(), 0})))
	assert.Panics(t, func() { IsNanPanic([]float64{math.NaN()}) })
	assert.NotEmpty(t, GetMemUsage())
}
