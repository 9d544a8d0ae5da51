package llm

import "fmt"

// Turn is one conversation entry as stored locally, independent of any
// upstream wire format.
type Turn struct {
	Role   string
	Text   string
	Images []string // data URLs
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Reply is the format-independent result of a completion call. A reply may
// carry images recovered from a failed upstream call; see ParseResponse.
type Reply struct {
	Text   string
	Images []string // data URLs
	Usage  Usage
}

// UpstreamError carries the upstream status and message verbatim so callers
// can surface them to the user unchanged.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}
