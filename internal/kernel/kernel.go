// Package kernel provides square convolution kernels and the edge-clamped
// convolution engine used by the spatial filters.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEvenSize    = errors.New("kernel size must be odd and positive")
	ErrWeightCount = errors.New("kernel weight count does not match size")
	ErrSigma       = errors.New("gaussian sigma must be positive and finite")
)

// Gaussian kernel sizes are clamped into this range.
const (
	MinGaussianSize = 3
	MaxGaussianSize = 11
)

// Kernel is an immutable size×size matrix of weights stored row-major, plus
// the sum of those weights. A zero normalizer means the convolution output is
// clamped without being divided.
type Kernel struct {
	size       int
	weights    []float64
	normalizer float64
}

// New copies weights into a kernel of the given size.
func New(size int, weights []float64) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEvenSize, size)
	}
	if len(weights) != size*size {
		return nil, fmt.Errorf("%w: got %d weights for size %d", ErrWeightCount, len(weights), size)
	}

	k := &Kernel{size: size, weights: make([]float64, len(weights))}
	copy(k.weights, weights)
	for _, w := range k.weights {
		k.normalizer += w
	}
	return k, nil
}

// FromRows builds a kernel from a square matrix.
func FromRows(rows [][]float64) (*Kernel, error) {
	flat := make([]float64, 0, len(rows)*len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrWeightCount, i, len(row), len(rows))
		}
		flat = append(flat, row...)
	}
	return New(len(rows), flat)
}

// MustNew is like New but panics on error. Use it for fixed kernels.
func MustNew(size int, weights []float64) *Kernel {
	k, err := New(size, weights)
	if err != nil {
		panic(err)
	}
	return k
}

// Identity returns a kernel that leaves an image unchanged.
func Identity(size int) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEvenSize, size)
	}
	weights := make([]float64, size*size)
	weights[len(weights)/2] = 1
	return New(size, weights)
}

// Sharpen boosts the center pixel against its four neighbours.
var Sharpen = MustNew(3, []float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
})

// Laplacian responds to edges. Its weights sum to zero, so the output is
// never divided.
var Laplacian = MustNew(3, []float64{
	0, -1, 0,
	-1, 4, -1,
	0, -1, 0,
})

// GaussianSize returns the kernel size used for sigma: sigma*6 truncated,
// forced odd, then clamped into [MinGaussianSize, MaxGaussianSize].
func GaussianSize(sigma float64) int {
	size := int(min(max(sigma*6, 0), MaxGaussianSize)) | 1
	return max(size, MinGaussianSize)
}

// Gaussian builds a 2D Gaussian kernel for sigma, normalized so all weights
// sum to 1.
func Gaussian(sigma float64) (*Kernel, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrSigma, sigma)
	}

	size := GaussianSize(sigma)
	half := size / 2
	twoSigmaSq := 2 * sigma * sigma

	weights := make([]float64, 0, size*size)
	sum := 0.0
	for i := -half; i <= half; i++ {
		for j := -half; j <= half; j++ {
			v := math.Exp(-float64(i*i+j*j) / twoSigmaSq)
			weights = append(weights, v)
			sum += v
		}
	}

	for i := range weights {
		weights[i] /= sum
	}

	return New(size, weights)
}

// Size returns the side length of the kernel.
func (k *Kernel) Size() int { return k.size }

// Radius returns (Size-1)/2, the offset of the center cell.
func (k *Kernel) Radius() int { return (k.size - 1) / 2 }

// Normalizer returns the sum of all weights.
func (k *Kernel) Normalizer() float64 { return k.normalizer }

// Weight returns the weight at the given matrix cell.
func (k *Kernel) Weight(row, col int) float64 {
	return k.weights[row*k.size+col]
}

func (k *Kernel) String() string {
	var sb strings.Builder
	for row := 0; row < k.size; row++ {
		sb.WriteString("| ")
		for col := 0; col < k.size; col++ {
			fmt.Fprintf(&sb, "%f ", k.Weight(row, col))
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
