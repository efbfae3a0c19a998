package model

import "encoding/json"

// Granule represents an individual granule record returned by the CMR
// granule search endpoint.
type Granule struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	TimeStart string                 `json:"time_start"`
	TimeEnd   string                 `json:"time_end"`
	Links     []Link                 `json:"links"`
	Metadata  map[string]interface{} `json:"-"`
}

// Link is one entry of a granule's links array.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// UnmarshalJSON keeps the full granule record available through Metadata in
// addition to the typed fields. CMR granule entries carry many
// collection-specific attributes that the pipeline never interprets.
func (g *Granule) UnmarshalJSON(data []byte) error {
	type alias Granule
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*g = Granule(tmp)
	if g.Metadata == nil {
		var meta map[string]interface{}
		if err := json.Unmarshal(data, &meta); err == nil {
			g.Metadata = meta
		} else {
			g.Metadata = map[string]interface{}{}
		}
	}
	if g.Links == nil {
		g.Links = []Link{}
	}
	return nil
}

// Page is one page of granule search results together with the pagination
// cursor for the next page. An empty SearchAfter marks the final page.
type Page struct {
	Entries     []Granule
	SearchAfter string
}

// Item is a STAC item document. Items are structurally open; the pipeline
// only ever reads a handful of well-known fields and otherwise passes the
// document through untouched.
type Item map[string]interface{}

// ID returns the item's id field, or "" when absent.
func (i Item) ID() string {
	return i.stringField("id")
}

// Collection returns the item's collection field, or "" when absent.
func (i Item) Collection() string {
	return i.stringField("collection")
}

// SetCollection tags the item with the given collection identifier.
func (i Item) SetCollection(id string) {
	i["collection"] = id
}

// Datetime returns properties.datetime, or "" when absent.
func (i Item) Datetime() string {
	props, ok := i["properties"].(map[string]interface{})
	if !ok {
		return ""
	}
	dt, _ := props["datetime"].(string)
	return dt
}

// Geometry returns the item's geometry object, or nil when absent.
func (i Item) Geometry() interface{} {
	return i["geometry"]
}

func (i Item) stringField(key string) string {
	v, _ := i[key].(string)
	return v
}
