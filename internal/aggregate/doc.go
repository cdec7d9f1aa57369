// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package aggregate composes the metadata provider, the preference store and the
hybrid recommender into the results served by the HTTP API.

Required versus optional data:

Some lookups are required for a response to make sense (the popular list for
a user without favorites, a search, a movie's details). Their failure is
returned as ErrUpstream, or ErrNotFound when the provider reported 404.

Everything else is enrichment: related titles per favorite, details per
favorite, and streaming availability per movie. Enrichment runs concurrently
through enrich.All and a failed lookup is replaced by a neutral default
(an empty list, an omitted movie, or default watch providers). Output order
always follows input order.
*/
package aggregate
