package hls

import (
	"fmt"
	"strings"
	"time"
)

// Collection identifies one of the two HLS product lines tracked by this
// pipeline: Landsat-derived (L30) and Sentinel-2-derived (S30) harmonized
// surface reflectance.
type Collection string

const (
	CollectionL30 Collection = "HLSL30"
	CollectionS30 Collection = "HLSS30"
)

// Collections lists every supported collection.
var Collections = []Collection{CollectionL30, CollectionS30}

// ParseCollection resolves a collection from its short name.
func ParseCollection(s string) (Collection, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Collections {
		if name == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("hls: unknown collection %q (expected HLSL30 or HLSS30)", s)
}

// ConceptID returns the CMR concept id for the collection.
func (c Collection) ConceptID() string {
	switch c {
	case CollectionL30:
		return "C2021957657-LPCLOUD"
	case CollectionS30:
		return "C2021957295-LPCLOUD"
	}
	return ""
}

// ID returns the versioned collection identifier used in storage paths and
// item tagging.
func (c Collection) ID() string {
	return string(c) + "_2.0"
}

// OriginDate returns the date the collection's archive begins. Months before
// the origin have no data; the origin month itself is partial.
func (c Collection) OriginDate() time.Time {
	switch c {
	case CollectionL30:
		return time.Date(2013, time.April, 11, 0, 0, 0, 0, time.UTC)
	case CollectionS30:
		return time.Date(2015, time.November, 28, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

// String returns the short collection name.
func (c Collection) String() string {
	return string(c)
}
