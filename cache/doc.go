// SPDX-License-Identifier: MIT

// Package cache stores rendered decompositions keyed by method and input
// bits. Decompositions are deterministic for a fixed numeric policy, so a
// hit can be served without running the engine.
package cache
