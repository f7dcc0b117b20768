// Package selection implements the cross-page row selection set and the
// accumulator that fills it from consecutive catalog pages.
//
// The accumulator translates a user-requested record count into a walk
// over catalog pages starting at the currently displayed page:
//
//	acc := selection.NewAccumulator(catalogClient, selection.DefaultConfig())
//	merged := acc.Accumulate(ctx, "15", 1, current)
//
// The walk is strictly sequential: each fetch must complete before the
// next page is requested, because the loop cannot know in advance how
// many records a page will yield relative to the remainder needed. An
// empty page terminates the walk; a fetch failure is collapsed into an
// empty page and terminates it the same way. The number of pages walked
// per request is capped by Config.MaxPages so a misbehaving source
// cannot hold the loop open indefinitely.
//
// Merging is keyed by artwork ID, never by value or reference, so
// re-fetched duplicates spanning overlapping requests collapse into one
// entry. Accumulate never mutates its inputs.
package selection
