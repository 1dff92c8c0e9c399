// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sourcing

import "github.com/danielhkuo/forkcast/models"

// Fixtures is the canned shortlist used when the search API is
// unconfigured, unreachable, or comes back empty. The entries are
// deliberately generic so any group can still hold a vote.
func Fixtures() []models.Candidate {
	return []models.Candidate{
		{
			ID:          "fixture-milos-diner",
			Name:        "Milo's Diner",
			Rating:      4.4,
			ReviewCount: 1287,
			PriceTier:   "$",
			Address:     "112 Main St",
			Subtitle:    "$, 4.4 stars, 1,287 reviews",
		},
		{
			ID:          "fixture-golden-wok",
			Name:        "Golden Wok",
			Rating:      4.1,
			ReviewCount: 654,
			PriceTier:   "$$",
			Address:     "48 Canal St",
			Subtitle:    "$$, 4.1 stars, 654 reviews",
		},
		{
			ID:          "fixture-la-fonda",
			Name:        "La Fonda",
			Rating:      4.6,
			ReviewCount: 2033,
			PriceTier:   "$$",
			Address:     "301 Elm Ave",
			Subtitle:    "$$, 4.6 stars, 2,033 reviews",
		},
		{
			ID:          "fixture-saffron-house",
			Name:        "Saffron House",
			Rating:      4.3,
			ReviewCount: 411,
			PriceTier:   "$$$",
			Address:     "77 Birch Rd",
			Subtitle:    "$$$, 4.3 stars, 411 reviews",
		},
		{
			ID:          "fixture-brick-oven",
			Name:        "Brick Oven Pizza Co",
			Rating:      4.0,
			ReviewCount: 978,
			PriceTier:   "$",
			Address:     "9 Depot Sq",
			Subtitle:    "$, 4.0 stars, 978 reviews",
		},
	}
}
