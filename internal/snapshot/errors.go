package snapshot

import (
	"errors"
	"strings"
)

var (
	// ErrSourceUnavailable covers transport failures, timeouts, non-2xx
	// responses and bodies that are not a proposals payload.
	ErrSourceUnavailable = errors.New("snapshot API unavailable")
	// ErrSourceQuery matches any *QueryError.
	ErrSourceQuery = errors.New("snapshot query error")
)

// GraphQLError is a single entry of a GraphQL "errors" array
type GraphQLError struct {
	Message   string `json:"message"`
	Locations []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations,omitempty"`
	Path []interface{} `json:"path,omitempty"`
}

// QueryError is returned when the hub answers with GraphQL-level errors.
type QueryError struct {
	Errors []GraphQLError
}

func (e *QueryError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "API returned errors: " + strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrSourceQuery) match.
func (e *QueryError) Is(target error) bool {
	return target == ErrSourceQuery
}
