// Package options decodes renderer option structures from HCL expressions
// and flattens them into command-line argument vectors.
//
// An option structure is either an ordered mapping (an HCL object literal)
// or a sequence (an HCL tuple literal). Mapping order is significant for
// the renderer's CLI, and cty object values iterate their attributes in
// name order, so structures are decoded from the hclsyntax expression
// itself rather than from an evaluated value.
package options

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind discriminates the two supported option shapes.
type Kind int

const (
	// Mapping is an ordered set of key/value pairs.
	Mapping Kind = iota
	// Sequence is an ordered list of scalar values.
	Sequence
)

// Pair is one entry of a mapping structure. Value may be a null, bool,
// string or number cty value; null and bool entries flatten to the key
// alone (flag-presence semantics).
type Pair struct {
	Key   string
	Value cty.Value
}

// Structure is a decoded option structure in source order.
type Structure struct {
	kind  Kind
	pairs []Pair
	items []cty.Value
}

// FromExpression decodes a single option structure from an HCL expression.
// Anything other than an object or tuple literal of scalar values is a
// configuration error.
func FromExpression(expr hcl.Expression) (*Structure, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		s := &Structure{kind: Mapping}
		for _, item := range e.Items {
			key, err := evalKey(item.KeyExpr)
			if err != nil {
				return nil, err
			}
			val, err := evalScalar(item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", key, err)
			}
			s.pairs = append(s.pairs, Pair{Key: key, Value: val})
		}
		return s, nil
	case *hclsyntax.TupleConsExpr:
		s := &Structure{kind: Sequence}
		for i, elem := range e.Exprs {
			val, err := evalScalar(elem)
			if err != nil {
				return nil, fmt.Errorf("option element %d: %w", i, err)
			}
			if val.IsNull() {
				return nil, fmt.Errorf("option element %d: null is not a valid sequence element", i)
			}
			s.items = append(s.items, val)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("option structure must be a mapping or a sequence, got %T at %s",
			expr, expr.Range().String())
	}
}

// ListFromExpression decodes a list of option structures, one per task.
func ListFromExpression(expr hcl.Expression) ([]*Structure, error) {
	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		return nil, fmt.Errorf("tasks must be a list of option structures, got %T at %s",
			expr, expr.Range().String())
	}
	structures := make([]*Structure, 0, len(tuple.Exprs))
	for i, elem := range tuple.Exprs {
		s, err := FromExpression(elem)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		structures = append(structures, s)
	}
	return structures, nil
}

// Kind reports whether the structure is a mapping or a sequence.
func (s *Structure) Kind() Kind { return s.kind }

// Len returns the number of entries (pairs or elements).
func (s *Structure) Len() int {
	if s.kind == Mapping {
		return len(s.pairs)
	}
	return len(s.items)
}

// Pairs returns the mapping entries in source order. Nil for sequences.
func (s *Structure) Pairs() []Pair { return s.pairs }

// Flatten converts the structure into argument-vector tokens, preserving
// source order. Mapping entries emit the key, then the value's string form
// unless the value is null or a boolean (bare flags carry no value).
// Sequence elements emit one token each.
func (s *Structure) Flatten() []string {
	if s == nil {
		return nil
	}
	var tokens []string
	switch s.kind {
	case Mapping:
		for _, p := range s.pairs {
			tokens = append(tokens, p.Key)
			if p.Value.IsNull() || p.Value.Type() == cty.Bool {
				continue
			}
			tokens = append(tokens, stringify(p.Value))
		}
	case Sequence:
		for _, v := range s.items {
			tokens = append(tokens, stringify(v))
		}
	}
	return tokens
}

// evalKey evaluates an object key expression to its string form.
func evalKey(expr hclsyntax.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating option key at %s: %w", expr.Range().String(), diags)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("option key at %s: %w", expr.Range().String(), err)
	}
	return str.AsString(), nil
}

// evalScalar evaluates a value expression and rejects non-scalar shapes.
func evalScalar(expr hclsyntax.Expression) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating at %s: %w", expr.Range().String(), diags)
	}
	if val.IsNull() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	switch val.Type() {
	case cty.String, cty.Number, cty.Bool:
		return val, nil
	default:
		return cty.NilVal, fmt.Errorf("value at %s must be a string, number or boolean, got %s",
			expr.Range().String(), val.Type().FriendlyName())
	}
}

// stringify renders a known-scalar, non-null value. Numbers render without
// a trailing fraction ("4", not "4.0").
func stringify(v cty.Value) string {
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	// evalScalar guarantees one of the cases above.
	panic(fmt.Sprintf("stringify: unexpected type %s", v.Type().FriendlyName()))
}
