// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package filter provides an operator-defined candidate filter for hybrid
recommendations, written as a CEL (Common Expression Language) expression.

The expression sees a single variable, item, with these keys:

	id      int     catalog item ID
	title   string
	genre   string
	reason  string  human readable explanation
	score   double  neighbour similarity (0 for content candidates)
	source  string  "collaborative" or "content"

Examples:

	item.genre != "Horror"
	item.source == "content" || item.score >= 0.5
	!(item.title.startsWith("Saw"))

The expression is compiled once, at startup. A compile error is a
configuration error. At request time an evaluation error keeps the candidate
and logs a warning, so a broken expression can never empty a result list.

A Filter is safe for concurrent use.
*/
package filter
