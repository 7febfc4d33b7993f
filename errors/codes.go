package errors

// ErrorCode identifies a class of application error. Codes are part of the
// HTTP response contract and must stay stable.
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_VALIDATION_ERROR
	ErrorCode_UPSTREAM_ERROR
	ErrorCode_PERSISTENCE_ERROR
	ErrorCode_MALFORMED_RESPONSE
	ErrorCode_NOT_FOUND
	ErrorCode_CONFLICT
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:        "UNSPECIFIED",
	ErrorCode_HTTP_OK:            "OK",
	ErrorCode_INTERNAL:           "INTERNAL",
	ErrorCode_VALIDATION_ERROR:   "VALIDATION_ERROR",
	ErrorCode_UPSTREAM_ERROR:     "UPSTREAM_ERROR",
	ErrorCode_PERSISTENCE_ERROR:  "PERSISTENCE_ERROR",
	ErrorCode_MALFORMED_RESPONSE: "MALFORMED_RESPONSE",
	ErrorCode_NOT_FOUND:          "NOT_FOUND",
	ErrorCode_CONFLICT:           "CONFLICT",
}

// String returns the stable name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
