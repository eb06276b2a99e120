package warehouse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrNodeIsNotConstructed = errors.New("Node must be created via NewNode constructor")

// Node is a warehouse service instance. The id doubles as the region key the
// node naturally serves.
type Node struct {
	id          string
	baseAddress string

	guard guard.ConstructorGuard
}

// NewNode creates a Node. baseAddress must be an absolute http(s) URL; a
// trailing slash is dropped so paths can be appended directly.
func NewNode(id, baseAddress string) (Node, error) {
	n := Node{guard: guard.NewConstructorGuard()}

	if err := errors.Join(n.setID(id), n.setBaseAddress(baseAddress)); err != nil {
		return Node{}, err
	}

	return n, nil
}

// MustNewNode is NewNode for static tables; it panics on invalid input.
func MustNewNode(id, baseAddress string) Node {
	n, err := NewNode(id, baseAddress)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Node) Validate() error {
	return n.guard.Validate(ErrNodeIsNotConstructed)
}

func (n Node) ID() string {
	return n.id
}

func (n Node) BaseAddress() string {
	return n.baseAddress
}

func (n Node) IsEqual(other Node) bool {
	return n.id == other.id
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s)", n.id, n.baseAddress)
}

func (n *Node) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("node id")
	}
	n.id = id
	return nil
}

func (n *Node) setBaseAddress(address string) error {
	address = strings.TrimRight(strings.TrimSpace(address), "/")
	if address == "" {
		return errs.NewValueIsRequiredError("node base address")
	}

	u, err := url.Parse(address)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("node base address", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"node base address",
			fmt.Errorf("%q is not an absolute http(s) URL", address),
		)
	}

	n.baseAddress = address
	return nil
}
