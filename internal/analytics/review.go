package analytics

import (
	"strings"

	"ecomdash/internal/dataset"
)

// ReviewComments returns the stopword-filtered comment messages of reviews
// with the given score on the filtered orders. Inner join on order id, in
// join order: per filtered order, that order's reviews in table order.
// A comment that is empty or emptied entirely by stopword removal still
// yields an empty string; rows are never dropped for being empty.
func ReviewComments(orders []dataset.Order, reviews []dataset.Review, stopwords dataset.StopwordSet, score int) []string {
	reviewsByOrder := make(map[string][]dataset.Review, len(reviews))
	for _, r := range reviews {
		reviewsByOrder[r.OrderID] = append(reviewsByOrder[r.OrderID], r)
	}

	var out []string
	for _, o := range orders {
		for _, r := range reviewsByOrder[o.ID] {
			if r.Score != score {
				continue
			}
			out = append(out, FilterStopwords(r.CommentMessage, stopwords))
		}
	}
	return out
}

// FilterStopwords tokenizes comment on whitespace, drops stopword tokens
// (matched case-insensitively) and rejoins the survivors with single
// spaces. Surviving tokens keep their original casing.
func FilterStopwords(comment string, stopwords dataset.StopwordSet) string {
	tokens := strings.Fields(comment)
	kept := tokens[:0]
	for _, token := range tokens {
		if stopwords.Contains(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
