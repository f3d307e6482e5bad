package dragonball

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const expectedGotMsg = "Expected '%v', got '%v'"

func TestErrorKindsHaveDistinctCodes(t *testing.T) {
	tests := []struct {
		err     *APIError
		kind    ErrorKind
		message string
		name    string
	}{
		{Network("/a"), KindNetwork, "Network error", "network"},
		{ParseData("/a"), KindParseData, "Cannot Parse Data", "parse_data"},
		{Unknown("/a"), KindUnknown, "Unknown error", "unknown"},
		{EmptyCollection("/a"), KindEmptyCollection, "Empty response", "empty_collection"},
		{MalformedURL("/a"), KindMalformedURL, "Can't create URL", "malformed_url"},
	}

	seen := make(map[int]bool)
	for _, test := range tests {
		if test.err.StatusCode != int(test.kind) {
			t.Errorf("%s: Expected StatusCode %d, got %d", test.name, int(test.kind), test.err.StatusCode)
		}
		if test.err.Message != test.message {
			t.Errorf(expectedGotMsg, test.message, test.err.Message)
		}
		if test.err.Kind() != test.kind {
			t.Errorf(expectedGotMsg, test.kind, test.err.Kind())
		}
		if test.kind.String() != test.name {
			t.Errorf(expectedGotMsg, test.name, test.kind.String())
		}
		if test.err.Data != nil {
			t.Errorf("%s: Expected nil Data, got %v", test.name, test.err.Data)
		}
		if seen[test.err.StatusCode] {
			t.Errorf("%s: StatusCode %d reused", test.name, test.err.StatusCode)
		}
		seen[test.err.StatusCode] = true
	}
}

func TestUnknownKindString(t *testing.T) {
	if got := ErrorKind(7).String(); got != "kind(7)" {
		t.Errorf(expectedGotMsg, "kind(7)", got)
	}
	if got := ErrorKind(7).Message(); got != "" {
		t.Errorf("Expected empty message, got %q", got)
	}
}

func TestAPIErrorString(t *testing.T) {
	err := Network("/api/heros/all")
	expected := "Network error (-1): /api/heros/all"
	if err.Error() != expected {
		t.Errorf(expectedGotMsg, expected, err.Error())
	}

	if got := ErrNetwork.Error(); got != "Network error (-1)" {
		t.Errorf(expectedGotMsg, "Network error (-1)", got)
	}

	var nilErr *APIError
	if nilErr.Error() != "<nil>" {
		t.Errorf(expectedGotMsg, "<nil>", nilErr.Error())
	}
}

func TestAPIErrorIsMatchesKindRegardlessOfURL(t *testing.T) {
	err := fmt.Errorf("loading: %w", ParseData("/api/heros/all"))

	if !errors.Is(err, ErrParseData) {
		t.Error("Expected errors.Is to match ErrParseData")
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("Expected errors.Is not to match ErrNetwork")
	}
}

func TestAPIErrorEqual(t *testing.T) {
	a := Network("/x").WithData([]byte("body"))
	b := Network("/x").WithData([]byte("body"))
	c := Network("/y").WithData([]byte("body"))
	d := Network("/x")

	if !a.Equal(b) {
		t.Error("Expected identical errors to be equal")
	}
	if a.Equal(c) {
		t.Error("Expected errors with different URL to differ")
	}
	if a.Equal(d) {
		t.Error("Expected errors with different Data to differ")
	}

	var nilErr *APIError
	if !nilErr.Equal(nil) {
		t.Error("Expected nil errors to be equal")
	}
	if a.Equal(nil) {
		t.Error("Expected error not to equal nil")
	}
}

func TestWithDataCopies(t *testing.T) {
	data := []byte("payload")
	base := Unknown("/u")
	withData := base.WithData(data)
	data[0] = 'X'

	if string(withData.Data) != "payload" {
		t.Errorf(expectedGotMsg, "payload", string(withData.Data))
	}
	if base.Data != nil {
		t.Error("Expected WithData to leave the receiver untouched")
	}
}

func TestDebugInfo(t *testing.T) {
	info := EmptyCollection("/api/heros/all").WithData([]byte("[]")).DebugInfo()

	for _, want := range []string{
		"Error Kind: empty_collection",
		"Message: Empty response",
		"Status Code: -4",
		"URL: /api/heros/all",
		"Data: 2 bytes",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected DebugInfo to contain %q, got:\n%s", want, info)
		}
	}
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", MalformedURL("bad"))
	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("Expected AsAPIError to find the error")
	}
	if apiErr.URL != "bad" {
		t.Errorf(expectedGotMsg, "bad", apiErr.URL)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("Expected AsAPIError to reject a plain error")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Problems: []string{"codec cannot be nil"}}
	if !strings.Contains(err.Error(), "codec cannot be nil") {
		t.Errorf("Expected problems in message, got %q", err.Error())
	}
}

func TestWithDataNilReceiver(t *testing.T) {
	var nilErr *APIError
	if got := nilErr.WithData([]byte("x")); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}
