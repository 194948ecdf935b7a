package engine

import "fmt"

// ErrorKind classifies why a command was rejected.
type ErrorKind uint8

const (
	ErrPhaseViolation    ErrorKind = iota // wrong phase or not the actor's turn
	ErrResourceShortfall                  // player cannot pay the cost
	ErrSupplyExhaustion                   // piece pool or dev deck is empty
	ErrPlacementIllegal                   // geometry rule broken
	ErrInvalidTarget                      // coordinate or player does not exist
)

// String returns the snake_case kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrPhaseViolation:
		return "phase_violation"
	case ErrResourceShortfall:
		return "resource_shortfall"
	case ErrSupplyExhaustion:
		return "supply_exhaustion"
	case ErrPlacementIllegal:
		return "placement_illegal"
	case ErrInvalidTarget:
		return "invalid_target"
	}
	return "unknown"
}

// RuleError is the error type returned by every rejected command. A command
// that returns a RuleError has not mutated the game in any way.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// ruleErrf builds a RuleError with a formatted message.
func ruleErrf(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
