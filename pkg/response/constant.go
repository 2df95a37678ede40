package response

const (
	// MessageSuccess is the default success message.
	MessageSuccess = "Success"

	// DefaultErrorMessage is returned for unexpected failures.
	DefaultErrorMessage = "Something went wrong"

	// InternalServerErrorCode is the error_code for 500 responses.
	InternalServerErrorCode = 500

	// DateFormat is the wire format for Date values.
	DateFormat = "2006-01-02"

	// DateTimeFormat is the wire format for DateTime values.
	DateTimeFormat = "2006-01-02 15:04:05"
)
