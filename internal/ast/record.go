package ast

import (
	"fmt"

	"tidy/internal/token"
)

// Record is the serializable form of an Element (JSON, YAML, msgpack).
// A leaf has Token set; a node has Kind, Head and Children.
type Record struct {
	Token    *token.Token `json:"token,omitempty" yaml:"token,omitempty" msgpack:"t,omitempty"`
	Kind     token.Kind   `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"k,omitempty"`
	Head     *Record      `json:"head,omitempty" yaml:"head,omitempty" msgpack:"h,omitempty"`
	Children []Record     `json:"children,omitempty" yaml:"children,omitempty" msgpack:"c,omitempty"`
}

// ToRecord converts an element into its serializable form.
func ToRecord(e Element) Record {
	switch v := e.(type) {
	case *Leaf:
		tok := v.Token
		return Record{Token: &tok}
	case *Node:
		head := ToRecord(v.Head)
		rec := Record{Kind: v.Kind, Head: &head}
		if len(v.Children) > 0 {
			rec.Children = make([]Record, len(v.Children))
			for i, c := range v.Children {
				rec.Children[i] = ToRecord(c)
			}
		}
		return rec
	}
	return Record{}
}

// ToRecords converts a slice of roots.
func ToRecords(roots []Element) []Record {
	out := make([]Record, len(roots))
	for i, r := range roots {
		out[i] = ToRecord(r)
	}
	return out
}

// FromRecord rebuilds an element and checks node shapes.
func FromRecord(r Record) (Element, error) {
	if r.Token != nil {
		if r.Head != nil || len(r.Children) > 0 {
			return nil, fmt.Errorf("ast: record has both a token and a head")
		}
		return &Leaf{Token: *r.Token}, nil
	}
	if r.Head == nil {
		return nil, fmt.Errorf("ast: record has neither a token nor a head")
	}
	if want := ExpectedChildren(r.Kind); want >= 0 && want != len(r.Children) {
		return nil, fmt.Errorf("ast: %s node with %d children, want %d", r.Kind, len(r.Children), want)
	}
	head, err := FromRecord(*r.Head)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: r.Kind, Head: head}
	if len(r.Children) > 0 {
		n.Children = make([]Element, len(r.Children))
		for i, c := range r.Children {
			if n.Children[i], err = FromRecord(c); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

// FromRecords is the inverse of ToRecords.
func FromRecords(recs []Record) ([]Element, error) {
	out := make([]Element, len(recs))
	for i, r := range recs {
		el, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		out[i] = el
	}
	return out, nil
}
