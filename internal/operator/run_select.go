package operator

import "github.com/corvid-labs/segforge/internal/docstate"

// #region run-select
// selectRun draws a contiguous run [start, start+n) within a segmentation of
// the given size, sized by a truncated geometric biased toward small runs.
// Shared by PermutePhrases, LinearisePhrases and Resegment.
func selectRun(doc docstate.DocumentState, size int, decay float64) (start, n int) {
	n = doc.RNG().Geometric(decay, size-1) + 1
	start = doc.RNG().UniformInt(size - n + 1)
	return start, n
}
// #endregion run-select
