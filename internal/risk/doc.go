// Package risk computes a deterministic mental-health risk score from entry
// text using a weighted keyword rule engine.
//
// # Algorithm
//
// The scorer holds three disjoint term sets (high-risk, medium-risk,
// protective) with signed weights. Text is lowercased and split on word
// boundaries; every phrase occurrence contributes its weight. The raw sum
// is divided by a fixed saturation constant and clamped to [0,1], then
// classified into Low/Moderate/High bands with inclusive lower bounds at
// 0.4 and 0.7.
//
// The keyword lists are configuration, not logic: they are passed to
// NewScorer explicitly and can be replaced from a JSON file (LoadLexicon)
// without touching the pipeline contract.
//
// Rule-based scoring is an approximation standing in for a real classifier;
// it trades recall for reproducibility. Scoring is side-effect-free and
// never returns an error: unknown or empty input lands in the lowest band.
package risk
