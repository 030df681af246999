package engine

import (
	"fmt"
	"strings"
)

// RecommendationHeader opens every rendered recommendation list.
const RecommendationHeader = "Recommended Tasks based on description similarity:"

// FormatScore renders a similarity score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FormatRecommendations renders a numbered recommendation list for display.
func FormatRecommendations(recs []Recommendation) string {
	var b strings.Builder
	b.WriteString(RecommendationHeader)
	b.WriteString("\n")
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d: %s (Similarity: %s)\n", i+1, rec.Task.Description, FormatScore(rec.Score))
	}
	return b.String()
}
