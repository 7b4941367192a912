package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Factory constructs a variant from the body of its tagged block. The body
// contains everything except the already-consumed `type` attribute.
// Construction may perform side effects (for example authenticating to a
// remote API), so a factory is invoked exactly once per resolved block.
type Factory[T any] func(ctx context.Context, body hcl.Body) (T, error)

// Table maps the `type` tag of one capability's tagged blocks to the
// registered variant factories.
type Table[T any] struct {
	capability string
	factories  map[string]Factory[T]
}

// NewTable creates an empty Table for the named capability. The capability
// name only appears in log lines and error messages.
func NewTable[T any](capability string) *Table[T] {
	return &Table[T]{
		capability: capability,
		factories:  make(map[string]Factory[T]),
	}
}

// Register adds a variant factory under the given tag.
func (t *Table[T]) Register(tag string, factory Factory[T]) {
	if _, exists := t.factories[tag]; exists {
		panic(fmt.Sprintf("%s variant %q already registered", t.capability, tag))
	}
	slog.Debug("Registering extension variant.", "capability", t.capability, "type", tag)
	t.factories[tag] = factory
}

// Resolve constructs the variant registered under tag from the given block
// body. An unregistered tag is a configuration error.
func (t *Table[T]) Resolve(ctx context.Context, tag string, body hcl.Body) (T, error) {
	factory, ok := t.factories[tag]
	if !ok {
		var zero T
		return zero, fmt.Errorf("no %s type %q registered (known types: %s)",
			t.capability, tag, strings.Join(t.Tags(), ", "))
	}
	return factory(ctx, body)
}

// Tags returns the registered tags in sorted order.
func (t *Table[T]) Tags() []string {
	tags := make([]string, 0, len(t.factories))
	for tag := range t.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
