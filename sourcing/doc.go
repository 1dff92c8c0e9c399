// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sourcing turns a location and the group's craving texts into
// a candidate shortlist. It wraps an external restaurant-search API and
// falls back to fixture candidates whenever the search fails or returns
// nothing, so voting can always start.
package sourcing
