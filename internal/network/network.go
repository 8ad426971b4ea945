// Package network holds the named points laid along the corridor: start nodes
// trains may depart from and crossings where paths meet.
package network

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cxd309/corridor-engine/internal/geometry"
)

// NodeID identifies a start node.
type NodeID = string

var (
	ErrNodeExists   = errors.New("node already exists")
	ErrNodeNotFound = errors.New("node not found")
	ErrNoCrossing   = errors.New("crossing not found")
)

// StartNode is a named offset used as an alternate origin for trains.
type StartNode struct {
	ID         NodeID  `json:"id"`
	Label      string  `json:"label,omitempty"`
	DistanceKm float64 `json:"distance_km"`
	PathIndex  int     `json:"path_index"`
}

// Crossing is a labelled point where two paths may form a managed junction.
// Its location is either absolute (DistanceKm) or, when Ratio is set, a
// fraction of the track length.
type Crossing struct {
	Label      string   `json:"label"`
	DistanceKm float64  `json:"distance_km"`
	Ratio      *float64 `json:"ratio,omitempty"`
	PathIndex  int      `json:"path_index"`
}

// At returns the crossing's distance on a track of lengthKm.
func (c Crossing) At(lengthKm float64) float64 {
	if c.Ratio != nil {
		return geometry.Clamp(*c.Ratio*lengthKm, lengthKm)
	}
	return geometry.Clamp(c.DistanceKm, lengthKm)
}

// Data is the serialisable form of a Network.
type Data struct {
	Nodes     []StartNode `json:"start_nodes"`
	Crossings []Crossing  `json:"crossings"`
}

// Network is the registry of start nodes and crossings.
type Network struct {
	nodes     []StartNode
	nodeMap   map[NodeID]int // id → index into nodes
	crossings []Crossing
	version   uint64
}

// NewNetwork builds a Network from Data, returning an error on duplicate node IDs.
func NewNetwork(data Data) (*Network, error) {
	n := &Network{nodeMap: make(map[NodeID]int)}
	for _, sn := range data.Nodes {
		if err := n.AddNode(sn); err != nil {
			return nil, err
		}
	}
	for _, c := range data.Crossings {
		n.AddCrossing(c)
	}
	return n, nil
}

// Version changes whenever a start node is added or removed.
func (n *Network) Version() uint64 { return n.version }

// AddNode adds a start node. Returns an error if the ID already exists.
func (n *Network) AddNode(sn StartNode) error {
	if sn.ID == "" {
		return fmt.Errorf("start node: empty id")
	}
	if _, exists := n.nodeMap[sn.ID]; exists {
		return fmt.Errorf("start node %q: %w", sn.ID, ErrNodeExists)
	}
	n.nodeMap[sn.ID] = len(n.nodes)
	n.nodes = append(n.nodes, sn)
	n.version++
	return nil
}

// RemoveNode deletes the start node with the given ID.
func (n *Network) RemoveNode(id NodeID) error {
	i, ok := n.nodeMap[id]
	if !ok {
		return fmt.Errorf("start node %q: %w", id, ErrNodeNotFound)
	}
	n.nodes = slices.Delete(n.nodes, i, i+1)
	delete(n.nodeMap, id)
	for j := i; j < len(n.nodes); j++ {
		n.nodeMap[n.nodes[j].ID] = j
	}
	n.version++
	return nil
}

// Node looks up a start node by ID.
func (n *Network) Node(id NodeID) (StartNode, bool) {
	i, ok := n.nodeMap[id]
	if !ok {
		return StartNode{}, false
	}
	return n.nodes[i], true
}

// Nodes returns a copy of the start nodes in insertion order.
func (n *Network) Nodes() []StartNode { return slices.Clone(n.nodes) }

// AddCrossing appends a crossing and returns its index.
func (n *Network) AddCrossing(c Crossing) int {
	n.crossings = append(n.crossings, c)
	return len(n.crossings) - 1
}

// MoveCrossing sets crossing i to an absolute distance, dropping any ratio.
func (n *Network) MoveCrossing(i int, distanceKm float64) error {
	if i < 0 || i >= len(n.crossings) {
		return fmt.Errorf("crossing %d: %w", i, ErrNoCrossing)
	}
	n.crossings[i].DistanceKm = distanceKm
	n.crossings[i].Ratio = nil
	return nil
}

// RemoveCrossing deletes crossing i.
func (n *Network) RemoveCrossing(i int) error {
	if i < 0 || i >= len(n.crossings) {
		return fmt.Errorf("crossing %d: %w", i, ErrNoCrossing)
	}
	n.crossings = slices.Delete(n.crossings, i, i+1)
	return nil
}

// Crossings returns a copy of the crossings.
func (n *Network) Crossings() []Crossing { return slices.Clone(n.crossings) }

// Data returns the serialisable form of the network.
func (n *Network) Data() Data {
	return Data{Nodes: n.Nodes(), Crossings: n.Crossings()}
}

// Matcher binds a Network to a track length for crossing lookups.
type Matcher struct {
	n        *Network
	lengthKm float64
}

// Bind returns a Matcher resolving crossings on a track of lengthKm.
func (n *Network) Bind(lengthKm float64) Matcher { return Matcher{n: n, lengthKm: lengthKm} }

// MatchCrossing is Network.MatchCrossing on the bound track length.
func (m Matcher) MatchCrossing(a, b, tolKm float64) (Crossing, bool) {
	return m.n.MatchCrossing(m.lengthKm, a, b, tolKm)
}

// MatchCrossing returns the first crossing lying strictly within tolKm of
// both a and b on a track of lengthKm. The crossing's own path is not
// considered here.
func (n *Network) MatchCrossing(lengthKm, a, b, tolKm float64) (Crossing, bool) {
	for _, c := range n.crossings {
		at := c.At(lengthKm)
		if math.Abs(a-at) < tolKm && math.Abs(b-at) < tolKm {
			return c, true
		}
	}
	return Crossing{}, false
}
