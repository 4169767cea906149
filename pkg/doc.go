// Package pkg provides the core libraries for treesearch, a bit-pattern
// tracking-reconstruction engine.
//
// # Overview
//
// treesearch builds a template tree of valid hit patterns ahead of time
// from a detector's geometry, then at event time walks that tree against
// a live set of wire hits to find the roads (candidate straight-line
// tracks) consistent with some pattern in the tree. The pkg directory is
// organized into the stages of that pipeline:
//
//  1. [pattern] - bit-pattern templates and the shared DAG of patterns
//  2. [patterntree] - template generation, traversal, and tree statistics
//  3. [hitpattern] - live per-event hit bitmaps matched against templates
//  4. [road] - clustering matched patterns into candidate tracks
//  5. [serialize] - binary persistence of a generated tree
//  6. [cache] - content-addressed reuse of a tree across identical params
//  7. [httpapi] - the match service's wire types and HTTP handlers
//  8. [roadstore] - optional durable persistence of match results
//
// # Architecture
//
// The typical data flow through treesearch:
//
//	TreeParam (detector geometry, max depth, slope bound)
//	         ↓
//	    [patterntree] Generate (build the template DAG)
//	         ↓
//	    [serialize] / [cache] (persist or reuse the tree)
//	         ↓
//	    Event hits -> [hitpattern] Hitpattern
//	         ↓
//	    [patterntree] Walk + [road] ComparePattern (match)
//	         ↓
//	    [road] Road clustering -> [httpapi] MatchResponse
//
// # Quick Start
//
// Generate a tree once and match events against it:
//
//	params, _ := patterntree.LoadParams("tree.toml")
//	tree, _ := patterntree.Generate(params)
//
//	resp := httpapi.Run(ctx, tree, httpapi.MatchRequest{Hits: hits})
//	for _, rd := range resp.Roads {
//	    fmt.Println(rd.ID, rd.HitCount)
//	}
//
// # Ambient Infrastructure
//
// [errors] - structured error codes and invariant-panic recovery shared
// across every package.
//
// [observability] - optional hooks for generation and match events, and
// for cache hit/miss/set, registered by the CLI or service at startup.
//
// [buildinfo] - ldflags-populated version metadata for the CLI.
package pkg
