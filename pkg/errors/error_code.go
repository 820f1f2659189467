package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidRecord        ErrorCode = 102
	ErrCodeInvalidStopLoss      ErrorCode = 103
	ErrCodeInvalidLotType       ErrorCode = 104
	ErrCodeInvalidDimension     ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106
	ErrCodeInvalidVersion       ErrorCode = 107

	// Instrument errors (200-299)
	ErrCodeUnsupportedSymbol ErrorCode = 200
	ErrCodeInvalidInstrument ErrorCode = 201

	// Journal errors (300-399)
	ErrCodeJournalOpenFailed ErrorCode = 300
	ErrCodeQueryFailed       ErrorCode = 301
	ErrCodeTradeNotFound     ErrorCode = 302
	ErrCodeImportFailed      ErrorCode = 303
	ErrCodeVersionMismatch   ErrorCode = 304

	// Report errors (400-499)
	ErrCodeReportFailed      ErrorCode = 400
	ErrCodeReportWriteFailed ErrorCode = 401
)
