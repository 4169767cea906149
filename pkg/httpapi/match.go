package httpapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jlab-tracking/treesearch/pkg/hitpattern"
	"github.com/jlab-tracking/treesearch/pkg/observability"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
	"github.com/jlab-tracking/treesearch/pkg/road"
)

// ClusterMaxDist is the default neighbor-bin smearing applied when
// building a Hitpattern from a MatchRequest.
const ClusterMaxDist = 1

// Run matches req against tree: it builds a Hitpattern from the posted
// hits, walks the tree with a ComparePattern visitor, clusters the
// resulting matches into Roads, and returns them as a MatchResponse.
func Run(ctx context.Context, tree *patterntree.Tree, req MatchRequest) MatchResponse {
	start := time.Now()
	observability.Engine().OnMatchStart(ctx, tree.Name, len(req.Hits))

	hp := hitpattern.New(tree.NPlanes, tree.NLevels, tree.Width, ClusterMaxDist)
	for _, ph := range req.Hits {
		plane := hitpattern.Plane{Type: ph.PlaneType, Index: ph.PlaneIndex}
		hit := hitpattern.NewWireHit(plane, ph.WireNum, ph.Position, 0, ph.Resolution).WithDrift(ph.DriftDistance)
		hp.SetHit(ph.PlaneIndex, hit)
	}

	var matches []*patterntree.NodeDescriptor
	cp := road.NewComparePattern(hp, tree.NPlanes, func(nd patterntree.NodeDescriptor) {
		matches = append(matches, &nd)
	})
	patterntree.Walk(tree.RootLink(), cp)

	proj := &road.Projection{NLayers: tree.NPlanes, NPlanes: tree.NPlanes, Hitpattern: hp}
	roads := clusterRoads(proj, matches)

	resp := MatchResponse{
		Stats: MatchStats{
			NumMatches:  len(matches),
			NumRoads:    len(roads),
			DurationsUS: int(time.Since(start).Microseconds()),
		},
	}
	for _, rd := range roads {
		resp.Roads = append(resp.Roads, toRoadResult(rd))
	}
	observability.Engine().OnMatchComplete(ctx, tree.Name, len(roads), time.Since(start), nil)
	return resp
}

// clusterRoads groups matches into maximal compatible clusters: each
// match is offered to every road already open, in order, and only starts
// a new road if none accept it.
func clusterRoads(proj *road.Projection, matches []*patterntree.NodeDescriptor) []*road.Road {
	var roads []*road.Road
	for _, nd := range matches {
		added := false
		for _, rd := range roads {
			if rd.Add(nd) {
				added = true
				break
			}
		}
		if !added {
			rd := road.New(proj)
			if rd.Add(nd) {
				roads = append(roads, rd)
			}
		}
	}
	for _, rd := range roads {
		rd.Finish()
	}
	return roads
}

func toRoadResult(rd *road.Road) RoadResult {
	res := RoadResult{
		ID:       uuid.NewString(),
		HitCount: rd.AllHits().Len(),
	}
	for _, nd := range rd.Patterns() {
		res.Patterns = append(res.Patterns, PatternResult{
			Depth: nd.Depth,
			Bits:  nd.Link.Pattern.Bits,
			Used:  nd.Used,
		})
	}
	return res
}
