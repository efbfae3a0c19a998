package spatial

import (
	"sort"

	"github.com/google/hilbert"
	"github.com/rs/zerolog"
)

const (
	// 14 bits per axis: a 16384x16384 grid over the whole globe.
	gridBits = 14
	gridSize = 1 << gridBits

	// SentinelKey sorts items whose tile cannot be resolved after every
	// spatially-keyed item. One past the largest Hilbert distance on the
	// grid (2^28 - 1).
	SentinelKey = 1 << (2 * gridBits)
)

// SortKeyer derives spatial sort keys from HLS STAC URLs: the Hilbert curve
// distance of the tile's center coordinate on a fixed-resolution grid.
// Construct one per process and share it; Key is pure and performs no I/O.
type SortKeyer struct {
	conv  Converter
	curve *hilbert.Hilbert
	log   zerolog.Logger
}

// NewSortKeyer builds a SortKeyer around the given tile-grid converter.
func NewSortKeyer(conv Converter, log zerolog.Logger) *SortKeyer {
	curve, err := hilbert.NewHilbert(gridSize)
	if err != nil {
		// gridSize is a constant power of two.
		panic(err)
	}
	return &SortKeyer{conv: conv, curve: curve, log: log}
}

// Key returns the spatial sort key for a STAC URL. URLs without a
// recognisable tile code, and tiles that fail coordinate conversion, degrade
// to SentinelKey; Key never fails.
func (k *SortKeyer) Key(rawURL string) int {
	tile, ok := TileFromURL(rawURL)
	if !ok {
		k.log.Warn().Str("url", rawURL).Msg("could not extract MGRS tile from URL")
		return SentinelKey
	}

	lat, lon, err := k.conv.ToLatLon(tile)
	if err != nil {
		k.log.Warn().Err(err).Str("tile", tile).Msg("failed to convert MGRS tile")
		return SentinelKey
	}

	x := clampGrid(int((lon + 180) / 360 * gridSize))
	y := clampGrid(int((lat + 90) / 180 * gridSize))

	d, err := k.curve.MapInverse(x, y)
	if err != nil {
		k.log.Warn().Err(err).Str("tile", tile).Msg("failed to map tile onto Hilbert curve")
		return SentinelKey
	}
	return d
}

func clampGrid(v int) int {
	if v < 0 {
		return 0
	}
	if v > gridSize-1 {
		return gridSize - 1
	}
	return v
}

// SortLinks orders URLs by spatial sort key, ascending. The sort is stable:
// URLs that degrade to the sentinel key keep their relative input order at
// the end.
func SortLinks(links []string, keyer *SortKeyer) {
	keys := make([]int, len(links))
	for i, link := range links {
		keys[i] = keyer.Key(link)
	}
	indexed := make([]int, len(links))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return keys[indexed[a]] < keys[indexed[b]]
	})
	sorted := make([]string, len(links))
	for pos, idx := range indexed {
		sorted[pos] = links[idx]
	}
	copy(links, sorted)
}
