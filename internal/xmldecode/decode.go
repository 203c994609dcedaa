// Package xmldecode turns Soocial XML documents into soocial.Value trees.
//
// There is no schema. Whether an element's children form a record or a list
// is guessed from the first two children alone: the same tag means a list,
// different tags (or a single child) mean a record. An element whose first
// two children share a tag by coincidence is therefore read as a list, and
// later children with a repeated tag overwrite earlier ones in a record.
// Both behaviours are relied upon by existing callers and are kept as is.
package xmldecode

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// Decode reads el as a record: attributes first, then one field per child
// keyed by the child's tag.
func Decode(el *Element) soocial.Value {
	record := soocial.NewRecord()
	setAttrs(record, el)

	for _, child := range el.Children {
		record.Set(child.Tag, decodeField(child))
	}

	return soocial.RecordOf(record)
}

// DecodeList reads every child of el, whatever its tag, as one list item.
// Leaf children contribute their text only, so typed arrays such as
// <ids type="array"><id type="integer">1</id></ids> read as ["1"]. Leaves
// without text are skipped.
func DecodeList(el *Element) soocial.Value {
	items := make([]soocial.Value, 0, len(el.Children))

	for _, child := range el.Children {
		var item soocial.Value

		switch {
		case len(child.Children) > 0:
			if heterogeneous(child) {
				item = Decode(child)
			} else {
				item = DecodeList(child)
			}
		default:
			item = text(child)
		}

		if item.IsAbsent() {
			continue
		}

		items = append(items, item)
	}

	return soocial.ListOf(items...)
}

// DecodeDocument decodes a response root. The root's children are the
// payload, so the decision is made over all of them: one shared tag (or no
// children at all) yields a list, anything else a record.
func DecodeDocument(root *Element) soocial.Value {
	if sharedTag(root.Children) {
		return DecodeList(root)
	}

	return Decode(root)
}

// DecodeBytes parses data and applies DecodeDocument.
func DecodeBytes(data []byte) (soocial.Value, error) {
	root, err := Parse(data)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("%w: %w", soocial.ErrDecodeResponse, err)
	}

	return DecodeDocument(root), nil
}

// DecodeRecordBytes parses data and always decodes the root as a record.
func DecodeRecordBytes(data []byte) (soocial.Value, error) {
	root, err := Parse(data)
	if err != nil {
		return soocial.Absent(), fmt.Errorf("%w: %w", soocial.ErrDecodeResponse, err)
	}

	return Decode(root), nil
}

func decodeField(el *Element) soocial.Value {
	switch {
	case len(el.Children) > 0:
		var record *soocial.Record

		if heterogeneous(el) {
			record, _ = Decode(el).Record()
		} else {
			record = soocial.NewRecord()
			record.Set(el.Children[0].Tag, DecodeList(el))
		}

		// attributes win over children of the same name
		setAttrs(record, el)

		return soocial.RecordOf(record)
	case len(el.Attrs) > 0:
		return attrsRecord(el)
	default:
		return text(el)
	}
}

func heterogeneous(el *Element) bool {
	return len(el.Children) == 1 || el.Children[0].Tag != el.Children[1].Tag
}

func sharedTag(children []*Element) bool {
	for _, child := range children[min(1, len(children)):] {
		if child.Tag != children[0].Tag {
			return false
		}
	}

	return true
}

func attrsRecord(el *Element) soocial.Value {
	record := soocial.NewRecord()
	setAttrs(record, el)

	return soocial.RecordOf(record)
}

func setAttrs(record *soocial.Record, el *Element) {
	for _, attr := range el.Attrs {
		record.Set(attr.Name, soocial.Scalar(attr.Value))
	}
}

func text(el *Element) soocial.Value {
	trimmed := strings.TrimSpace(el.Text)
	if trimmed == "" {
		return soocial.Absent()
	}

	return soocial.Scalar(trimmed)
}
