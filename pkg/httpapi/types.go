// Package httpapi implements the event-time match API: the wire types
// posted hits are decoded into and resulting Roads are encoded as, and
// the matching/clustering logic that runs a MatchRequest against a
// cached pattern tree to produce a MatchResponse. Both the HTTP service
// (pkg/httpapi/server.go) and the "match" CLI command share this logic.
package httpapi

// PlaneHit is one posted hit on a single detector plane.
type PlaneHit struct {
	PlaneType     int     `json:"planeType"`
	PlaneIndex    int     `json:"planeIndex"`
	WireNum       int32   `json:"wireNum"`
	Position      float64 `json:"position"`
	DriftDistance float64 `json:"driftDistance"`
	Resolution    float64 `json:"resolution"`
}

// MatchRequest carries one event's hits as a flat list; each hit names its
// own plane.
type MatchRequest struct {
	Hits []PlaneHit `json:"hits"`
}

// PatternResult describes one matched tree node consumed by a Road.
type PatternResult struct {
	Depth uint32  `json:"depth"`
	Bits  []int32 `json:"bits"`
	Used  uint8   `json:"used"`
}

// RoadResult is one finished road in a MatchResponse.
type RoadResult struct {
	ID       string          `json:"id"`
	HitCount int             `json:"hitCount"`
	Patterns []PatternResult `json:"patterns"`
}

// MatchStats summarizes one match run.
type MatchStats struct {
	NumMatches  int `json:"numMatches"`
	NumRoads    int `json:"numRoads"`
	DurationsUS int `json:"durationUs"`
}

// MatchResponse is the result of matching a MatchRequest against a tree.
type MatchResponse struct {
	Roads []RoadResult `json:"roads"`
	Stats MatchStats   `json:"stats"`
}
