package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrderTicket   ErrorCode = 102
	ErrCodeInvalidCredentials   ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidProvider      ErrorCode = 111

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound ErrorCode = 200
	ErrCodeQueryFailed  ErrorCode = 202

	// Terminal errors (300-399)
	ErrCodeTerminalUnavailable ErrorCode = 300
	ErrCodeTerminalInitFailed  ErrorCode = 301
	ErrCodeLoginFailed         ErrorCode = 302
	ErrCodeNotConnected        ErrorCode = 303
	ErrCodeVersionMismatch     ErrorCode = 304

	// Trading errors (500-599)
	ErrCodeOrderFailed        ErrorCode = 500
	ErrCodePositionNotFound   ErrorCode = 501
	ErrCodeSymbolNotFound     ErrorCode = 502
	ErrCodeSymbolSelectFailed ErrorCode = 503
	ErrCodePriceUnavailable   ErrorCode = 504
	ErrCodeOrderRejected      ErrorCode = 505

	// Journal errors (600-699)
	ErrCodeJournalFailed ErrorCode = 600
)
