package dragonball

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrorKind identifies one entry of the closed error taxonomy. Its value is
// the status code carried by the matching APIError.
type ErrorKind int

const (
	KindNetwork         ErrorKind = -1
	KindParseData       ErrorKind = -2
	KindUnknown         ErrorKind = -3
	KindEmptyCollection ErrorKind = -4
	KindMalformedURL    ErrorKind = -5
)

var kindMessages = map[ErrorKind]string{
	KindNetwork:         "Network error",
	KindParseData:       "Cannot Parse Data",
	KindUnknown:         "Unknown error",
	KindEmptyCollection: "Empty response",
	KindMalformedURL:    "Can't create URL",
}

// Message returns the fixed human message of the kind.
func (k ErrorKind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return ""
}

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParseData:
		return "parse_data"
	case KindUnknown:
		return "unknown"
	case KindEmptyCollection:
		return "empty_collection"
	case KindMalformedURL:
		return "malformed_url"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// APIError describes a failure building or executing an API request.
// Values are built at the point of failure and never mutated afterwards.
type APIError struct {
	URL        string
	StatusCode int
	Data       []byte
	Message    string
}

// Sentinel values for errors.Is checks. They match any APIError of the same
// kind regardless of URL or Data.
var (
	ErrNetwork         = newKindError(KindNetwork, "")
	ErrParseData       = newKindError(KindParseData, "")
	ErrUnknown         = newKindError(KindUnknown, "")
	ErrEmptyCollection = newKindError(KindEmptyCollection, "")
	ErrMalformedURL    = newKindError(KindMalformedURL, "")
)

func newKindError(kind ErrorKind, url string) *APIError {
	return &APIError{URL: url, StatusCode: int(kind), Message: kind.Message()}
}

// Network reports a transport response that was not a plain 200.
func Network(url string) *APIError { return newKindError(KindNetwork, url) }

// ParseData reports a body that could not be encoded or decoded.
func ParseData(url string) *APIError { return newKindError(KindParseData, url) }

// Unknown reports a failure that fits no other kind.
func Unknown(url string) *APIError { return newKindError(KindUnknown, url) }

// EmptyCollection reports a successful response without any element, for
// callers that treat zero results as a failure.
func EmptyCollection(url string) *APIError { return newKindError(KindEmptyCollection, url) }

// MalformedURL reports a descriptor that does not compose into a valid URL.
func MalformedURL(url string) *APIError { return newKindError(KindMalformedURL, url) }

// Error implements error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.URL == "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.URL)
}

// Kind returns the taxonomy entry of the error.
func (e *APIError) Kind() ErrorKind {
	if e == nil {
		return 0
	}
	return ErrorKind(e.StatusCode)
}

// Is compares the (StatusCode, Message) discriminant for errors.Is.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*APIError); ok && t != nil {
		return e.StatusCode == t.StatusCode && e.Message == t.Message
	}
	return false
}

// Equal reports whether both errors carry identical fields.
func (e *APIError) Equal(other *APIError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.URL == other.URL &&
		e.StatusCode == other.StatusCode &&
		e.Message == other.Message &&
		bytes.Equal(e.Data, other.Data)
}

// WithData returns a copy of e carrying data.
func (e *APIError) WithData(data []byte) *APIError {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Data = append([]byte(nil), data...)
	return &cp
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *APIError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Kind: %s\n", e.Kind())
	info += fmt.Sprintf("Message: %s\n", e.Message)
	info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if len(e.Data) > 0 {
		info += fmt.Sprintf("Data: %d bytes\n", len(e.Data))
	}
	return info
}

// AsAPIError returns the first *APIError in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ConfigError is returned by ValidateConfiguration.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("configuration validation failed: %v", e.Problems)
}
