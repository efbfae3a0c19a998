package hls

import (
	"net/url"
	"strings"

	"github.com/example/go-hls/hls/model"
)

const stacSuffix = "stac.json"

// ExtractStacLinks filters granule records down to their STAC JSON document
// URLs. For each granule the first link whose href starts with the given
// scheme prefix ("https" or "s3") and ends with "stac.json" is kept.
// Granules with malformed or missing links are silently skipped; partial
// catalog data is expected. Output order matches input order.
func ExtractStacLinks(granules []model.Granule, prefix string) []*url.URL {
	if prefix == "" {
		prefix = "https"
	}
	links := make([]*url.URL, 0, len(granules))
	for _, granule := range granules {
		for _, link := range granule.Links {
			if link.Href == "" {
				continue
			}
			if !strings.HasPrefix(link.Href, prefix) || !strings.HasSuffix(link.Href, stacSuffix) {
				continue
			}
			u, err := url.Parse(link.Href)
			if err != nil {
				break
			}
			links = append(links, u)
			break
		}
	}
	return links
}
