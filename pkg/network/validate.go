package network

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNodes       = 64
	MaxIDLength    = 100
	MaxLabelLength = 200

	// Node ids share the identifier alphabet of the rule language so a node
	// can always be referenced from a rule expression.
	idPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// ErrTooManyNodes is returned when a network exceeds the supported node count.
// States are packed into a single 64-bit word, so 64 nodes is a hard cap.
var ErrTooManyNodes = errors.New("network exceeds maximum node count")

// Validate checks structural invariants of a network: node ids are unique,
// well-formed, and within the supported count; every edge endpoint references
// an existing node; bias overrides reference existing nodes.
func Validate(n *Network) error {
	if n == nil {
		return errors.New("network cannot be nil")
	}

	if err := validate.Struct(n); err != nil {
		return formatValidationError(err)
	}

	if len(n.Nodes) > MaxNodes {
		return fmt.Errorf("%w: %d nodes, maximum is %d", ErrTooManyNodes, len(n.Nodes), MaxNodes)
	}

	seen := make(map[string]bool, len(n.Nodes))
	for i, node := range n.Nodes {
		if !idPattern.MatchString(node.ID) {
			return fmt.Errorf("Nodes[%d]: id %q contains invalid characters (must match %s)", i, node.ID, idPattern.String())
		}
		if len(node.Label) > MaxLabelLength {
			return fmt.Errorf("Nodes[%d]: label exceeds maximum length of %d characters", i, MaxLabelLength)
		}
		if seen[node.ID] {
			return fmt.Errorf("Nodes[%d]: duplicate node id %q", i, node.ID)
		}
		seen[node.ID] = true
	}

	for i, edge := range n.Edges {
		if !seen[edge.Source] {
			return fmt.Errorf("Edges[%d]: source %q does not reference an existing node", i, edge.Source)
		}
		if !seen[edge.Target] {
			return fmt.Errorf("Edges[%d]: target %q does not reference an existing node", i, edge.Target)
		}
	}

	for id := range n.Options.BiasOverrides {
		if !seen[id] {
			return fmt.Errorf("Options.BiasOverrides: %q does not reference an existing node", id)
		}
	}

	if n.Options.TieBehavior != "" && n.Options.TieBehavior != TieHold {
		return fmt.Errorf("Options.TieBehavior: unsupported policy %q", n.Options.TieBehavior)
	}

	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "required":
				return fmt.Errorf("%s: field is required", fieldErr.Field())
			case "min":
				return fmt.Errorf("%s: must have at least %s items", fieldErr.Field(), fieldErr.Param())
			case "max":
				return fmt.Errorf("%s: exceeds maximum of %s", fieldErr.Field(), fieldErr.Param())
			default:
				return fmt.Errorf("%s: failed %s validation", fieldErr.Field(), fieldErr.Tag())
			}
		}
	}
	return err
}
