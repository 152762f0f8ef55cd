package errors

// ErrorCode identifies an application error condition
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT ErrorCode = 2
	ErrorCode_NOT_FOUND        ErrorCode = 3
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 4

	ErrorCode_CREDENTIALS_MISSING      ErrorCode = 10
	ErrorCode_SCHEMA_VALIDATION_FAILED ErrorCode = 11
	ErrorCode_MISSING_TRANSCRIPT       ErrorCode = 12
	ErrorCode_RUN_NOT_FOUND            ErrorCode = 13
	ErrorCode_RUN_NOT_COMPLETED        ErrorCode = 14

	ErrorCode_AI_GENERATION_FAILED ErrorCode = 20
	ErrorCode_AI_RESULT_TOO_SHORT  ErrorCode = 21

	ErrorCode_INTEGRATION_CRM_FAILED           ErrorCode = 30
	ErrorCode_INTEGRATION_DOCS_FAILED          ErrorCode = 31
	ErrorCode_INTEGRATION_STORAGE_FAILED       ErrorCode = 32
	ErrorCode_INTEGRATION_TRANSCRIPTION_FAILED ErrorCode = 33
	ErrorCode_INTEGRATION_CACHE_FAILED         ErrorCode = 34
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                          "OK",
	ErrorCode_INTERNAL:                         "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                 "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                        "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                  "INVALID_PAYLOAD",
	ErrorCode_CREDENTIALS_MISSING:              "CREDENTIALS_MISSING",
	ErrorCode_SCHEMA_VALIDATION_FAILED:         "SCHEMA_VALIDATION_FAILED",
	ErrorCode_MISSING_TRANSCRIPT:               "MISSING_TRANSCRIPT",
	ErrorCode_RUN_NOT_FOUND:                    "RUN_NOT_FOUND",
	ErrorCode_RUN_NOT_COMPLETED:                "RUN_NOT_COMPLETED",
	ErrorCode_AI_GENERATION_FAILED:             "AI_GENERATION_FAILED",
	ErrorCode_AI_RESULT_TOO_SHORT:              "AI_RESULT_TOO_SHORT",
	ErrorCode_INTEGRATION_CRM_FAILED:           "INTEGRATION_CRM_FAILED",
	ErrorCode_INTEGRATION_DOCS_FAILED:          "INTEGRATION_DOCS_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:       "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_TRANSCRIPTION_FAILED: "INTEGRATION_TRANSCRIPTION_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:         "INTEGRATION_CACHE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
