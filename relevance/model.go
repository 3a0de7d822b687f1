// Package relevance models how likely a conversation is to matter in
// discovery review.
//
// Real review populations are a mixture: a small pocket of conversations
// where nearly every message is significant, and a large majority where
// significance is vanishingly rare. Each sub-population follows
// 1-(1-p)^n, the chance that at least one of n messages trips the
// label, and the blended curve gives longer threads a gently rising but
// never runaway probability of being responsive or hot.
package relevance

import "fmt"

// Mixture weights and per-message probabilities. The high/low pairs are
// calibrated so that corpus-wide responsive and hot rates land near
// observed review benchmarks.
const (
	responsiveHighWeight = 0.0794979
	responsiveHighProb   = 0.12
	responsiveLowProb    = 0.0005

	hotHighWeight = 0.0654206
	hotHighProb   = 0.015
	hotLowProb    = 0.00002
)

// Odds holds the classification probabilities for one thread length.
type Odds struct {
	Responsive float64
	Hot        float64
}

// mixture blends the high and low sub-populations for a thread of n
// messages. Monotonically non-decreasing in n for any valid parameters.
func mixture(n int, highWeight, highProb, lowProb float64) float64 {
	high := 1 - pow1m(highProb, n)
	low := 1 - pow1m(lowProb, n)
	return highWeight*high + (1-highWeight)*low
}

// pow1m computes (1-p)^n without math.Pow so the curve stays exact for
// integer n.
func pow1m(p float64, n int) float64 {
	out := 1.0
	base := 1 - p
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}

// ThreadOdds returns the responsive and hot probabilities for a thread
// of n messages. n must be positive.
func ThreadOdds(n int) (Odds, error) {
	if n <= 0 {
		return Odds{}, fmt.Errorf("thread length must be positive, got %d", n)
	}
	return Odds{
		Responsive: mixture(n, responsiveHighWeight, responsiveHighProb, responsiveLowProb),
		Hot:        mixture(n, hotHighWeight, hotHighProb, hotLowProb),
	}, nil
}

// Classification is the outcome of classifying one thread.
type Classification struct {
	Responsive bool
	Hot        bool
}

// Classify maps two uniform rolls onto a classification for a thread of
// n messages. Rolls must lie in [0,1]. A hot thread is always also
// responsive.
func Classify(n int, responsiveRoll, hotRoll float64) (Classification, error) {
	if responsiveRoll < 0 || responsiveRoll > 1 {
		return Classification{}, fmt.Errorf("responsive roll must be in [0,1], got %g", responsiveRoll)
	}
	if hotRoll < 0 || hotRoll > 1 {
		return Classification{}, fmt.Errorf("hot roll must be in [0,1], got %g", hotRoll)
	}

	odds, err := ThreadOdds(n)
	if err != nil {
		return Classification{}, err
	}

	hot := hotRoll <= odds.Hot
	return Classification{
		Responsive: responsiveRoll <= odds.Responsive || hot,
		Hot:        hot,
	}, nil
}
