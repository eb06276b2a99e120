package warehouse

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultRegistrySpec is the node table used when none is configured.
const DefaultRegistrySpec = "HCM=http://node-hcm:5000,HN=http://node-hn:5000,DN=http://node-dn:5000"

var (
	ErrRegistryIsNotConstructed = errors.New("Registry must be created via NewRegistry constructor")
	ErrRegistryIsEmpty          = errors.New("warehouse registry must contain at least one node")
)

// Registry is the immutable mapping from region/node id to Node.
//
// Invariants:
//   - at least one node
//   - node ids are unique
//   - iteration order is by node id, so every listing is deterministic
type Registry struct {
	byID  map[string]Node
	nodes []Node

	guard guard.ConstructorGuard
}

// NewRegistry builds a registry from nodes. Duplicate ids and an empty node
// list are rejected.
func NewRegistry(nodes ...Node) (Registry, error) {
	if len(nodes) == 0 {
		return Registry{}, ErrRegistryIsEmpty
	}

	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return Registry{}, err
		}
		if _, exists := byID[n.ID()]; exists {
			return Registry{}, errs.NewObjectAlreadyExistsError("node id", n.ID())
		}
		byID[n.ID()] = n
	}

	sorted := slices.Clone(nodes)
	slices.SortFunc(sorted, func(a, b Node) int {
		return strings.Compare(a.ID(), b.ID())
	})

	return Registry{
		byID:  byID,
		nodes: sorted,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseRegistry builds a registry from "ID=URL" pairs separated by commas,
// e.g. "HCM=http://node-hcm:5000,HN=http://node-hn:5000".
func ParseRegistry(table string) (Registry, error) {
	var nodes []Node
	for _, pair := range strings.Split(table, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		id, address, ok := strings.Cut(pair, "=")
		if !ok {
			return Registry{}, errs.NewValueIsInvalidErrorWithCause(
				"warehouse registry",
				fmt.Errorf("entry %q is not in ID=URL form", pair),
			)
		}

		n, err := NewNode(id, address)
		if err != nil {
			return Registry{}, err
		}
		nodes = append(nodes, n)
	}

	return NewRegistry(nodes...)
}

func (r Registry) Validate() error {
	return r.guard.Validate(ErrRegistryIsNotConstructed)
}

// Lookup resolves a region/node id.
func (r Registry) Lookup(id string) (Node, bool) {
	n, ok := r.byID[id]
	return n, ok
}

// Nodes returns every node ordered by id. The slice is a copy.
func (r Registry) Nodes() []Node {
	return slices.Clone(r.nodes)
}

// Alternates returns every node except the one with excludedID, ordered by id.
func (r Registry) Alternates(excludedID string) []Node {
	alternates := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		if n.ID() != excludedID {
			alternates = append(alternates, n)
		}
	}
	return alternates
}

func (r Registry) Len() int {
	return len(r.nodes)
}
