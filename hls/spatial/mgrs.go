package spatial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
)

// HLS product names embed the MGRS tile between dots, e.g.
// HLS.S30.T60WWV.2025275T234641.v2.0_stac.json.
var tilePattern = regexp.MustCompile(`\.T([0-9]{2}[A-Z]{3})\.`)

// TileFromURL extracts the MGRS tile identifier from an HLS STAC JSON URL.
// The second return value is false when the URL does not carry a tile code.
func TileFromURL(rawURL string) (string, bool) {
	match := tilePattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Converter resolves a tile-grid identifier to geographic coordinates.
type Converter interface {
	ToLatLon(tile string) (lat, lon float64, err error)
}

const (
	squareSize = 100000.0
	// Row letters repeat every 2,000,000 m of northing.
	rowCycle = 2000000.0

	columnLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	rowLetters    = "ABCDEFGHJKLMNPQRSTUV"
)

// minNorthing gives the minimum UTM northing of each latitude band
// (southern-hemisphere bands use the 10,000,000 m false northing).
var minNorthing = map[byte]float64{
	'C': 1100000, 'D': 2000000, 'E': 2800000, 'F': 3700000,
	'G': 4600000, 'H': 5500000, 'J': 6400000, 'K': 7300000,
	'L': 8200000, 'M': 9100000, 'N': 0, 'P': 800000,
	'Q': 1700000, 'R': 2600000, 'S': 3500000, 'T': 4400000,
	'U': 5300000, 'V': 6200000, 'W': 7000000, 'X': 7900000,
}

// MGRSConverter converts 5-character MGRS grid-zone tiles (zone, latitude
// band, 100 km square) to the geographic coordinates of the tile center.
type MGRSConverter struct{}

// ToLatLon implements Converter.
func (MGRSConverter) ToLatLon(tile string) (float64, float64, error) {
	tile = strings.ToUpper(strings.TrimSpace(tile))
	if len(tile) != 5 {
		return 0, 0, fmt.Errorf("spatial: malformed MGRS tile %q", tile)
	}

	zone, err := strconv.Atoi(tile[:2])
	if err != nil || zone < 1 || zone > 60 {
		return 0, 0, fmt.Errorf("spatial: invalid MGRS zone in %q", tile)
	}

	band := tile[2]
	baseNorthing, ok := minNorthing[band]
	if !ok {
		return 0, 0, fmt.Errorf("spatial: invalid latitude band %q in %q", string(band), tile)
	}

	// Column letters cycle through three 8-letter sets across zones.
	setStart := ((zone - 1) % 3) * 8
	col := strings.IndexByte(columnLetters, tile[3])
	if col < setStart || col >= setStart+8 {
		return 0, 0, fmt.Errorf("spatial: column letter %q not valid for zone %d", string(tile[3]), zone)
	}
	easting := float64(col-setStart+1) * squareSize

	row := strings.IndexByte(rowLetters, tile[4])
	if row < 0 {
		return 0, 0, fmt.Errorf("spatial: invalid row letter %q in %q", string(tile[4]), tile)
	}
	// Even zones offset the row lettering by five positions.
	if zone%2 == 0 {
		row = (row - 5 + len(rowLetters)) % len(rowLetters)
	}
	northing := float64(row) * squareSize
	for northing < baseNorthing {
		northing += rowCycle
	}

	// Center of the 100 km square.
	lat, lon, err := UTM.ToLatLon(easting+squareSize/2, northing+squareSize/2, zone, string(band))
	if err != nil {
		return 0, 0, fmt.Errorf("spatial: convert tile %q: %w", tile, err)
	}
	return lat, lon, nil
}
