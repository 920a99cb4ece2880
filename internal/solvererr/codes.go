package solvererr

// Error codes identify the four error kinds the solver loop distinguishes.
//
// Code ranges:
// S0100-S0199: parse errors from a collaborator's surface syntax
// S0200-S0299: search-driver outcomes (timeout, exhaustion)
// S0900-S0999: invariant violations (bugs, not user error)
const (
	CodeParseError         = "S0100"
	CodeTimeout            = "S0200"
	CodeNotFound           = "S0201"
	CodeInvariantViolation = "S0900"
)

// descriptions maps a code to a short human-readable description, returned
// by Describe.
var descriptions = map[string]string{
	CodeParseError:         "malformed BV surface syntax",
	CodeTimeout:            "search exceeded its time budget",
	CodeNotFound:           "enumeration exhausted with no matching fingerprint",
	CodeInvariantViolation: "an internal invariant was violated",
}

// Describe returns a human-readable description of code, or "unknown
// error code" if code is not one of the above.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown error code"
}
