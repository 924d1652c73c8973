package highlight

// State is a stage of the parse pipeline. States are entered in declaration
// order and never revisited; Failed absorbs any error from Indexed through
// Annotated.
type State int

const (
	StateCreated State = iota
	StateIndexed
	StateParsed
	StateValidated
	StateRanged
	StateTokenized
	StateAnnotated
	StateClassified
	StateCompleted
	StateFailed
)

var stateNames = [...]string{
	StateCreated:    "created",
	StateIndexed:    "indexed",
	StateParsed:     "parsed",
	StateValidated:  "validated",
	StateRanged:     "ranged",
	StateTokenized:  "tokenized",
	StateAnnotated:  "annotated",
	StateClassified: "classified",
	StateCompleted:  "completed",
	StateFailed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
