package embed

import "slices"

// DefaultPermutationThreshold is the token count above which permutations are
// sampled rather than exhaustively enumerated. Four tokens produce 24
// permutations; five would already produce 120.
const DefaultPermutationThreshold = 4

// DefaultMaxPermutations caps the permutations embedded for phrases longer
// than the threshold.
const DefaultMaxPermutations = 24

// permute returns token-order permutations of tokens, starting with the
// identity ordering and continuing in Heap's algorithm order. A positive
// limit truncates the enumeration; limit <= 0 enumerates all n! orderings.
// The sequence is fully deterministic, which matters because downstream
// truncation is order-sensitive.
func permute(tokens []string, limit int) [][]string {
	n := len(tokens)
	if n == 0 {
		return nil
	}

	work := slices.Clone(tokens)
	out := [][]string{slices.Clone(work)}
	if limit > 0 && len(out) >= limit {
		return out
	}

	// Heap's algorithm, iterative form.
	c := make([]int, n)
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				work[0], work[i] = work[i], work[0]
			} else {
				work[c[i]], work[i] = work[i], work[c[i]]
			}
			out = append(out, slices.Clone(work))
			if limit > 0 && len(out) >= limit {
				return out
			}
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
	return out
}
