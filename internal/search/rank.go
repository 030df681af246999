package search

import (
	"fmt"
	"sort"
)

// Match is one ranked document: its corpus index and similarity score.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Rank scores row query against every other row of m and returns at most
// topK matches whose score is strictly greater than minScore. Results are
// ordered by score descending, ties by ascending index. A corpus with fewer
// than two documents yields no matches and no error, even when query is out
// of range; the index is only validated once there is something to compare.
func Rank(m *Matrix, query, topK int, minScore float64) ([]Match, error) {
	if m == nil {
		return nil, fmt.Errorf("nil matrix: %w", ErrInvalidInput)
	}
	if m.Len() < 2 {
		return []Match{}, nil
	}
	q, err := m.Row(query)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return rankVector(m, q, query, topK, minScore), nil
}

// Search ranks every row of m against free text. No row is excluded.
func Search(m *Matrix, text string, topK int, minScore float64) []Match {
	if m.Len() == 0 {
		return []Match{}
	}
	return rankVector(m, m.Transform(text), -1, topK, minScore)
}

func rankVector(m *Matrix, q Vector, exclude, topK int, minScore float64) []Match {
	results := make([]Match, 0, m.Len())
	if topK <= 0 {
		return results
	}

	for i, row := range m.Rows {
		if i == exclude {
			continue
		}
		score := clamp(Dot(q, row))
		if score > minScore {
			results = append(results, Match{Index: i, Score: score})
		}
	}

	// Sort by descending score, then ascending index
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if len(results) > topK {
		return results[:topK]
	}
	return results
}

// Dot returns the dot product of two sparse vectors. For unit-length rows
// this is their cosine similarity.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// clamp keeps floating-point drift inside [0, 1].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
