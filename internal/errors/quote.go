package errors

var (
	ErrQuoteNotFound = &DomainError{
		Code:    "QUOTE_NOT_FOUND",
		Message: "quote not found",
	}
	ErrQuoteNotDraft = &DomainError{
		Code:    "QUOTE_NOT_DRAFT",
		Message: "quote is no longer a draft",
	}
	ErrQuoteForbidden = &DomainError{
		Code:    "QUOTE_FORBIDDEN",
		Message: "quote belongs to another merchant",
	}
)
