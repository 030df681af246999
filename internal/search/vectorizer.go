package search

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// Vector is a sparse row of the term-weight matrix. Indices are column
// numbers in ascending order; Values holds the weight for each index.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no weighted terms.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Matrix is a TF-IDF term-weight matrix with one L2-normalized row per
// document and one column per vocabulary term.
type Matrix struct {
	Vocabulary []string
	IDF        []float64
	Rows       []Vector

	columns map[string]int
}

// Len returns the number of rows (documents).
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// Row returns the weight vector of document i.
func (m *Matrix) Row(i int) (Vector, error) {
	if i < 0 || i >= m.Len() {
		return Vector{}, fmt.Errorf("row %d out of range [0, %d): %w", i, m.Len(), ErrInvalidInput)
	}
	return m.Rows[i], nil
}

// Similarity returns the cosine similarity of documents i and j.
func (m *Matrix) Similarity(i, j int) (float64, error) {
	a, err := m.Row(i)
	if err != nil {
		return 0, err
	}
	b, err := m.Row(j)
	if err != nil {
		return 0, err
	}
	return clamp(Dot(a, b)), nil
}

// Transform projects free text onto the matrix vocabulary using the fitted
// IDF weights. Terms unseen at vectorization time are ignored.
func (m *Matrix) Transform(text string) Vector {
	if m == nil {
		return Vector{}
	}
	counts := make(map[int]float64)
	for _, token := range Tokenize(text) {
		if col, ok := m.columns[token]; ok {
			counts[col]++
		}
	}
	return m.weigh(counts)
}

// weigh turns raw term counts into a unit-length TF-IDF vector.
func (m *Matrix) weigh(counts map[int]float64) Vector {
	if len(counts) == 0 {
		return Vector{}
	}
	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		v.Indices = append(v.Indices, col)
	}
	sort.Ints(v.Indices)
	for _, col := range v.Indices {
		v.Values = append(v.Values, counts[col]*m.IDF[col])
	}

	norm := v.Norm()
	if norm == 0 {
		return Vector{}
	}
	for k := range v.Values {
		v.Values[k] /= norm
	}
	return v
}

// Vectorize builds the TF-IDF matrix for docs. Term frequency is the raw
// count, IDF is ln((1+N)/(1+df)) + 1, and every row is scaled to unit
// length. Documents with no weighted terms keep an all-zero row. An empty
// corpus yields an empty matrix.
func Vectorize(docs []string) (*Matrix, error) {
	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)

	// 1. Tokenize and count document frequencies
	for i, doc := range docs {
		if !utf8.ValidString(doc) {
			return nil, fmt.Errorf("document %d is not valid UTF-8: %w", i, ErrInvalidInput)
		}
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seenInDoc := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			if !seenInDoc[token] {
				docFreq[token]++
				seenInDoc[token] = true
			}
		}
	}

	// 2. Stable column order
	vocabulary := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	m := &Matrix{
		Vocabulary: vocabulary,
		IDF:        make([]float64, len(vocabulary)),
		Rows:       make([]Vector, len(docs)),
		columns:    make(map[string]int, len(vocabulary)),
	}

	// 3. IDF
	n := float64(len(docs))
	for col, term := range vocabulary {
		m.columns[term] = col
		m.IDF[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	// 4. TF-IDF rows
	for i, tokens := range tokenized {
		counts := make(map[int]float64, len(tokens))
		for _, token := range tokens {
			counts[m.columns[token]]++
		}
		m.Rows[i] = m.weigh(counts)
	}

	return m, nil
}
