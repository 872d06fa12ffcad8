package wire

import (
	"strconv"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
)

// GroupSchema names everything the decoder/encoder needs to drive a
// repeating group: the count tag, the delimiter tag that starts every
// element, the set of tags legal inside one element, and any legally
// nested groups keyed by their own count tag.
type GroupSchema struct {
	CountTag     dictionary.Tag
	DelimiterTag dictionary.Tag
	Elements     []dictionary.Tag
	Nested       map[dictionary.Tag]GroupSchema
}

// GroupElement is one decoded element: its own (non-nested) fields in wire
// order, plus any nested group elements keyed by the nested group's count
// tag.
type GroupElement struct {
	Fields []Field
	Nested map[dictionary.Tag][]GroupElement
}

// Get returns the first occurrence of tag within this element.
func (e GroupElement) Get(tag dictionary.Tag) (string, bool) {
	for _, f := range e.Fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// DecodeGroup reads a repeating group starting at fields[startIdx] (which
// must be the count tag) and returns its elements plus the index of the
// first field after the group.
func DecodeGroup(fields []Field, startIdx int, schema GroupSchema) ([]GroupElement, int, *CodecError) {
	if startIdx >= len(fields) || fields[startIdx].Tag != schema.CountTag {
		return nil, startIdx, newErr(ErrMalformedGroup, int(schema.CountTag), "", "count tag not found at expected position")
	}
	count, err := strconv.Atoi(fields[startIdx].Value)
	if err != nil || count < 0 {
		return nil, startIdx, newErr(ErrMalformedGroup, int(schema.CountTag), "", "group count is not a non-negative integer")
	}

	idx := startIdx + 1
	elements := make([]GroupElement, 0, count)
	for i := 0; i < count; i++ {
		if idx >= len(fields) || fields[idx].Tag != schema.DelimiterTag {
			return nil, idx, newErr(ErrMalformedGroup, int(schema.DelimiterTag), "",
				"expected delimiter tag starting element "+strconv.Itoa(i))
		}
		elem := GroupElement{Nested: map[dictionary.Tag][]GroupElement{}}
		elem.Fields = append(elem.Fields, fields[idx])
		idx++

		for idx < len(fields) {
			tag := fields[idx].Tag
			if tag == schema.DelimiterTag {
				break // next element begins
			}
			if nestedSchema, ok := schema.Nested[tag]; ok {
				nestedElems, nextIdx, nerr := DecodeGroup(fields, idx, nestedSchema)
				if nerr != nil {
					return nil, idx, nerr
				}
				elem.Nested[tag] = nestedElems
				idx = nextIdx
				continue
			}
			if tagIn(schema.Elements, tag) {
				elem.Fields = append(elem.Fields, fields[idx])
				idx++
				continue
			}
			break // field belongs outside this group
		}
		elements = append(elements, elem)
	}
	return elements, idx, nil
}

// EncodeGroup writes the count tag followed by each element's fields in
// schema order, recursing into nested groups.
func EncodeGroup(schema GroupSchema, elements []GroupElement) []Field {
	out := []Field{{Tag: schema.CountTag, Value: strconv.Itoa(len(elements))}}
	for _, e := range elements {
		out = append(out, e.Fields...)
		for tag, nestedElems := range e.Nested {
			nestedSchema, ok := schema.Nested[tag]
			if !ok || len(nestedElems) == 0 {
				continue
			}
			out = append(out, EncodeGroup(nestedSchema, nestedElems)...)
		}
	}
	return out
}

func tagIn(tags []dictionary.Tag, tag dictionary.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
