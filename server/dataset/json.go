package dataset

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/tidwall/gjson"
)

// SmallPayloadLimit bounds the two-tier JSON strategy: documents whose
// structural count and deepest nested count both stay at or under the
// limit are returned whole instead of being paginated.
const SmallPayloadLimit = 100

// jsonPage serves a JSON file. Small documents bypass pagination and
// come back complete; larger ones are normalized to a top-level list
// and sliced. The engine is never involved.
func (s *Service) jsonPage(item catalog.Item, req PageRequest) (*PageResult, error) {
	raw, err := os.ReadFile(item.Path)
	if err != nil {
		return nil, errors.New(ErrJSONReadFailed, "failed to read json file", err).AddContext("path", item.Path)
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.Newf(ErrJSONInvalid, "file %s is not valid json", item.Name)
	}

	doc := gjson.ParseBytes(raw)
	total, maxNested := countItems(doc)

	if total <= SmallPayloadLimit && maxNested <= SmallPayloadLimit {
		s.logger.Debug().
			Str("resource", item.Key()).
			Int64("total", total).
			Msg("served json document whole")

		return &PageResult{
			Data:  json.RawMessage(bytes.TrimSpace(raw)),
			Count: total,
			Pagination: Pagination{
				Page:     1,
				PageSize: total,
				Total:    total,
				HasNext:  false,
			},
		}, nil
	}

	items := normalize(doc, raw)
	listTotal := int64(len(items))

	start := req.Offset()
	end := start + req.PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	s.logger.Debug().
		Str("resource", item.Key()).
		Int("page", req.Page).
		Int64("total", listTotal).
		Int("rows", len(page)).
		Msg("served json page")

	return &PageResult{
		Data:       page,
		Count:      int64(len(page)),
		Pagination: paginationFor(req, listTotal),
	}, nil
}

// countItems computes the structural size of a document.
//
// The count treats arrays as themselves plus their elements, objects as
// the sum of their values, and every scalar as one. The nested count is
// the document's own length for a top-level array, and the largest
// count among container values for a top-level object.
func countItems(doc gjson.Result) (total, maxNested int64) {
	total = countNested(doc)

	switch {
	case doc.IsArray():
		maxNested = int64(len(doc.Array()))
	case doc.IsObject():
		doc.ForEach(func(_, value gjson.Result) bool {
			if value.IsArray() || value.IsObject() {
				if n := countNested(value); n > maxNested {
					maxNested = n
				}
			}
			return true
		})
	}

	return total, maxNested
}

func countNested(v gjson.Result) int64 {
	switch {
	case v.IsArray():
		elements := v.Array()
		n := int64(len(elements))
		for _, element := range elements {
			n += countNested(element)
		}
		return n
	case v.IsObject():
		var n int64
		v.ForEach(func(_, value gjson.Result) bool {
			n += countNested(value)
			return true
		})
		return n
	default:
		return 1
	}
}

// normalize turns the document into the list that gets sliced: arrays
// keep their elements, anything else becomes a single-element list
// holding the whole document.
func normalize(doc gjson.Result, raw []byte) []json.RawMessage {
	if doc.IsArray() {
		elements := doc.Array()
		items := make([]json.RawMessage, len(elements))
		for i, element := range elements {
			items[i] = json.RawMessage(element.Raw)
		}
		return items
	}
	return []json.RawMessage{json.RawMessage(bytes.TrimSpace(raw))}
}
