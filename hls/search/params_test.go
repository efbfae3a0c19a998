package search

import (
	"errors"
	"testing"
	"time"
)

func TestBoundingBoxValidation(t *testing.T) {
	cases := []struct {
		name    string
		box     BoundingBox
		wantErr bool
	}{
		{"valid", BoundingBox{West: -93, South: 46, East: -92, North: 47}, false},
		{"west out of range", BoundingBox{West: -181, South: 46, East: -92, North: 47}, true},
		{"east out of range", BoundingBox{West: -93, South: 46, East: 181, North: 47}, true},
		{"south out of range", BoundingBox{West: -93, South: -91, East: -92, North: 47}, true},
		{"north out of range", BoundingBox{West: -93, South: 46, East: -92, North: 91}, true},
		{"inverted longitude", BoundingBox{West: -92, South: 46, East: -93, North: 47}, true},
		{"inverted latitude", BoundingBox{West: -93, South: 47, East: -92, North: 46}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.box.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected validation error for %+v", tc.box)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParamsEncodeValidation(t *testing.T) {
	params := New("C2021957657-LPCLOUD")
	params.Start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := params.Encode(); err == nil {
		t.Fatalf("expected error when start is set without end")
	}

	params.End = params.Start.Add(-time.Hour)
	if _, err := params.Encode(); err == nil {
		t.Fatalf("expected error when start is after end")
	}

	if _, err := New().Encode(); err == nil {
		t.Fatalf("expected error when no concept ids are set")
	}
}

func TestParamsEncodeValues(t *testing.T) {
	params := New("C2021957657-LPCLOUD", "C2021957295-LPCLOUD")
	params.BoundingBox = &BoundingBox{West: -93, South: 46, East: -92, North: 47}
	params.Start = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	params.End = time.Date(2025, 10, 1, 23, 59, 59, 0, time.UTC)

	got, err := params.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids := got["collection_concept_id[]"]; len(ids) != 2 || ids[0] != "C2021957657-LPCLOUD" || ids[1] != "C2021957295-LPCLOUD" {
		t.Fatalf("unexpected concept ids: %v", ids)
	}
	if bbox := got.Get("bounding_box"); bbox != "-93,46,-92,47" {
		t.Fatalf("unexpected bounding box: %q", bbox)
	}
	if temporal := got.Get("temporal"); temporal != "2025-10-01T00:00:00Z,2025-10-01T23:59:59Z" {
		t.Fatalf("unexpected temporal: %q", temporal)
	}
}

func TestBuilderComposesParams(t *testing.T) {
	params := ParamsBuilder().
		AddConceptID("C1").
		BoundingBox(-10, -5, 10, 5).
		Temporal(
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		).
		Build()

	if len(params.ConceptIDs) != 1 || params.ConceptIDs[0] != "C1" {
		t.Fatalf("unexpected concept ids: %v", params.ConceptIDs)
	}
	if params.BoundingBox == nil || params.BoundingBox.East != 10 {
		t.Fatalf("unexpected bounding box: %+v", params.BoundingBox)
	}
	if params.Format != "json" {
		t.Fatalf("unexpected format: %q", params.Format)
	}
}
