package fasttree

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// binMapper maps raw feature values to histogram bins. Bin b holds the values
// v with upper[b-1] < v <= upper[b]; the last upper bound is +Inf, so every
// finite value has a bin.
type binMapper struct {
	upper []float64
}

// newBinMapper finds the bin boundaries of one feature column. With at most
// maxBin distinct values every value gets its own bin; otherwise distinct
// values are grouped into runs of equal length.
func newBinMapper(values []float64, maxBin int) binMapper {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	unique := make([]float64, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			unique = append(unique, v)
		}
	}
	if len(unique) == 0 {
		return binMapper{upper: []float64{math.Inf(1)}}
	}

	step := (len(unique) + maxBin - 1) / maxBin
	upper := make([]float64, 0, len(unique)/step+1)
	for i := step; i < len(unique); i += step {
		upper = append(upper, (unique[i-1]+unique[i])/2)
	}
	upper = append(upper, math.Inf(1))
	return binMapper{upper: upper}
}

// numBins returns the number of bins.
func (m binMapper) numBins() int {
	return len(m.upper)
}

// bin returns the bin of v.
func (m binMapper) bin(v float64) int {
	return sort.SearchFloat64s(m.upper, v)
}

// threshold returns the split value that sends bins <= b to the left child.
func (m binMapper) threshold(b int) float64 {
	return m.upper[b]
}

// binnedData holds the binned representation of a training matrix.
type binnedData struct {
	mappers []binMapper
	// bins[j][i] is the bin of row i in feature j
	bins [][]uint16
}

func newBinnedData(X *mat.Dense, maxBin int) *binnedData {
	rows, cols := X.Dims()
	d := &binnedData{
		mappers: make([]binMapper, cols),
		bins:    make([][]uint16, cols),
	}
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(column, j, X)
		m := newBinMapper(column, maxBin)
		d.mappers[j] = m

		idx := make([]uint16, rows)
		for i, v := range column {
			idx[i] = uint16(m.bin(v))
		}
		d.bins[j] = idx
	}
	return d
}
