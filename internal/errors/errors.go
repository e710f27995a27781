package errors

// DomainError is an error the API surfaces to clients with a stable
// machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
