package loom

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Query is a composable filter over a World's archetypes, built from
// And/Or/Not nodes. Grounded directly on the teacher's query.go
// (compositeNode/leafNode over mask.Mask), retargeted from
// table.Table/Storage.RowIndexFor at a component instance to
// *archetype/ComponentID directly, since components here are plain
// struct types rather than table.ElementType instances.
type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode evaluates whether an archetype's static signature satisfies
// this node. Per-row filters (Changed[T]) are not QueryNode: they depend
// on per-entity tick state a static archetype-level predicate can't
// express, so they live on Col[T] instead (see componentaccessible.go).
type QueryNode interface {
	Evaluate(a *archetype) bool
}

// QueryOperation names the logical combinator a compositeNode applies.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         QueryOperation
	children   []QueryNode
	components []ComponentID
}

type leafNode struct {
	components []ComponentID
}

type query struct {
	root QueryNode
}

// newQuery starts a new, empty query.
func newQuery() Query {
	return &query{}
}

func newCompositeNode(op QueryOperation, components []ComponentID) *compositeNode {
	return &compositeNode{op: op, components: components}
}

func newLeafNode(components []ComponentID) *leafNode {
	return &leafNode{components: components}
}

func maskOf(ids []ComponentID) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}

func (n *compositeNode) Evaluate(a *archetype) bool {
	nodeMask := maskOf(n.components)
	switch n.op {
	case OpAnd:
		if !a.sigMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(a) {
				return false
			}
		}
		return true
	case OpOr:
		if a.sigMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(a) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return a.sigMask.ContainsNone(nodeMask)
		}
		if len(n.components) > 0 && !a.sigMask.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(a) {
				return false
			}
		}
		return true
	}
	return false
}

func (n *leafNode) Evaluate(a *archetype) bool {
	return a.sigMask.ContainsAll(maskOf(n.components))
}

// And creates an AND node over the given components/sub-nodes.
func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates an OR node over the given components/sub-nodes.
func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a NOT node over the given components/sub-nodes.
func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case ComponentID, []ComponentID, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only ComponentID, []ComponentID, or QueryNode are allowed", item)
		}
	}
	return nil
}

func (q *query) processItems(items ...interface{}) ([]ComponentID, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	var components []ComponentID
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case ComponentID:
			components = append(components, v)
		case []ComponentID:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

func (q *query) Evaluate(a *archetype) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(a)
}

// Comp is sugar for ComponentIDFor[T](), for use as a query item:
// world.NewQuery().And(loom.Comp[Position](), loom.Comp[Velocity]()).
func Comp[T any]() ComponentID {
	return ComponentIDFor[T]()
}
