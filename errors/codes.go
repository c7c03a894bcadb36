package errors

// ErrorCode is the application-level error code carried in every error response
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004
	ErrorCode_SERVICE_DISABLED ErrorCode = 1005

	// Meetings
	ErrorCode_MEETING_NOT_FOUND ErrorCode = 2000
	ErrorCode_MEETING_INVALID   ErrorCode = 2001

	// Evaluations
	ErrorCode_EVALUATION_NOT_FOUND ErrorCode = 3000
	ErrorCode_EVALUATION_FAILED    ErrorCode = 3001
	ErrorCode_EVALUATION_PARSE     ErrorCode = 3002
	ErrorCode_INVALID_MODE         ErrorCode = 3003

	// Analysis
	ErrorCode_ANALYSIS_EMPTY     ErrorCode = 4000
	ErrorCode_ANALYSIS_NOT_FOUND ErrorCode = 4001

	// Integrations
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 5000
	ErrorCode_AI_QUOTA_EXCEEDED      ErrorCode = 5001
	ErrorCode_STORAGE_FAILED         ErrorCode = 5002
	ErrorCode_DB_QUERY_FAILED        ErrorCode = 5004
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:            "UNSPECIFIED",
	ErrorCode_HTTP_OK:                "HTTP_OK",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:       "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:        "INVALID_PAYLOAD",
	ErrorCode_SERVICE_DISABLED:       "SERVICE_DISABLED",
	ErrorCode_MEETING_NOT_FOUND:      "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID:        "MEETING_INVALID",
	ErrorCode_EVALUATION_NOT_FOUND:   "EVALUATION_NOT_FOUND",
	ErrorCode_EVALUATION_FAILED:      "EVALUATION_FAILED",
	ErrorCode_EVALUATION_PARSE:       "EVALUATION_PARSE",
	ErrorCode_INVALID_MODE:           "INVALID_MODE",
	ErrorCode_ANALYSIS_EMPTY:         "ANALYSIS_EMPTY",
	ErrorCode_ANALYSIS_NOT_FOUND:     "ANALYSIS_NOT_FOUND",
	ErrorCode_AI_SERVICE_UNAVAILABLE: "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:      "AI_QUOTA_EXCEEDED",
	ErrorCode_STORAGE_FAILED:         "STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:        "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
