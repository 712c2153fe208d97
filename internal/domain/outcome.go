package domain

// OutcomeKind tags the result of a remote call
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty               // valid response, nothing matched
	OutcomeFailed              // transport or payload error
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SearchOutcome is the tagged result of a search request
type SearchOutcome struct {
	Kind    OutcomeKind
	Page    *SearchPage // set when Kind == OutcomeSuccess
	Message string      // user-facing notice for Empty and Failed
	Err     error       // set when Kind == OutcomeFailed
}

// DetailOutcome is the tagged result of a detail request
type DetailOutcome struct {
	Kind    OutcomeKind
	Detail  *MovieDetail
	Message string
	Err     error
}
