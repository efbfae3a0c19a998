// Package stacparquet persists sequences of STAC items as zstd-compressed
// parquet through the object storage abstraction.
package stacparquet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/example/go-hls/hls/model"
	"github.com/example/go-hls/hls/store"
)

// Row is the columnar projection of one STAC item. Frequently-filtered
// fields are promoted to their own columns; the full document rides along in
// the item column.
type Row struct {
	ID         string `parquet:"id"`
	Collection string `parquet:"collection"`
	Datetime   string `parquet:"datetime"`
	Geometry   string `parquet:"geometry"`
	Item       string `parquet:"item"`
}

// RowFromItem projects a STAC item onto the parquet schema.
func RowFromItem(item model.Item) (Row, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return Row{}, fmt.Errorf("stacparquet: marshal item %q: %w", item.ID(), err)
	}
	geometry := ""
	if g := item.Geometry(); g != nil {
		data, err := json.Marshal(g)
		if err != nil {
			return Row{}, fmt.Errorf("stacparquet: marshal geometry of %q: %w", item.ID(), err)
		}
		geometry = string(data)
	}
	return Row{
		ID:         item.ID(),
		Collection: item.Collection(),
		Datetime:   item.Datetime(),
		Geometry:   geometry,
		Item:       string(raw),
	}, nil
}

// Write encodes items in input order and puts the resulting parquet file at
// path in st.
func Write(ctx context.Context, st store.Store, path string, items []model.Item) error {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row, err := RowFromItem(item)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[Row](&buf, parquet.Compression(&parquet.Zstd))
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("stacparquet: write rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("stacparquet: close writer: %w", err)
	}

	return st.Put(ctx, path, buf.Bytes())
}
