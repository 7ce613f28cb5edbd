package subset

import "math/rand"

// randomSubset draws k distinct elements uniformly at random from
// candidates (without replacement) via a partial Fisher-Yates shuffle. It
// clamps k to len(candidates) and returns a copy, leaving candidates
// untouched.
func randomSubset(candidates []int, k int, rng *rand.Rand) []int {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return nil
	}
	cp := append([]int(nil), candidates...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return append([]int(nil), cp[:k]...)
}

// randomElement draws one element uniformly at random from candidates,
// reporting false if candidates is empty.
func randomElement(candidates []int, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
