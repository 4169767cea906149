package roadstore

import (
	"testing"

	"github.com/jlab-tracking/treesearch/pkg/httpapi"
)

func TestToDocumentsEmpty(t *testing.T) {
	docs := toDocuments(httpapi.MatchResponse{})
	if len(docs) != 0 {
		t.Errorf("got %d docs, want 0", len(docs))
	}
}

func TestToDocumentsMapsFields(t *testing.T) {
	resp := httpapi.MatchResponse{Roads: []httpapi.RoadResult{
		{
			ID:       "road-1",
			HitCount: 4,
			Patterns: []httpapi.PatternResult{{Depth: 2, Bits: []int32{1, 0, 1}, Used: 1}},
		},
		{ID: "road-2", HitCount: 0},
	}}

	docs := toDocuments(resp)
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	first, ok := docs[0].(RoadDocument)
	if !ok {
		t.Fatalf("docs[0] is %T, want RoadDocument", docs[0])
	}
	if first.ID != "road-1" || first.HitCount != 4 || len(first.Patterns) != 1 {
		t.Errorf("unexpected document: %+v", first)
	}

	second := docs[1].(RoadDocument)
	if second.ID != "road-2" || second.HitCount != 0 {
		t.Errorf("unexpected document: %+v", second)
	}
}
