package dragonball

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestEndpointURL(t *testing.T) {
	e := Endpoint{Path: "/api/heros/all"}
	u, err := e.URL()
	if err != nil {
		t.Fatalf("URL() returned error: %v", err)
	}

	expected := "https://dragonball.keepcoding.education/api/heros/all"
	if u.String() != expected {
		t.Errorf(expectedGotMsg, expected, u.String())
	}
}

func TestEndpointURLWithQueryAndHost(t *testing.T) {
	e := Endpoint{
		Host:  "localhost:8443",
		Path:  "/search",
		Query: map[string]string{"name": "goku san", "page": "2"},
	}
	u, err := e.URL()
	if err != nil {
		t.Fatalf("URL() returned error: %v", err)
	}

	if u.Host != "localhost:8443" {
		t.Errorf(expectedGotMsg, "localhost:8443", u.Host)
	}
	if got := u.Query().Get("name"); got != "goku san" {
		t.Errorf(expectedGotMsg, "goku san", got)
	}
	if got := u.Query().Get("page"); got != "2" {
		t.Errorf(expectedGotMsg, "2", got)
	}
}

func TestEndpointURLMalformed(t *testing.T) {
	tests := []struct {
		name string
		e    Endpoint
	}{
		{"empty path", Endpoint{}},
		{"relative path", Endpoint{Path: "api/heros"}},
		{"host with slash", Endpoint{Host: "bad/host", Path: "/a"}},
		{"host with space", Endpoint{Host: "bad host", Path: "/a"}},
		{"host with userinfo", Endpoint{Host: "user@host", Path: "/a"}},
		{"port only", Endpoint{Host: ":8080", Path: "/a"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.e.URL()
			if !errors.Is(err, ErrMalformedURL) {
				t.Fatalf("Expected MalformedURL, got %v", err)
			}
			apiErr, _ := AsAPIError(err)
			if apiErr.URL != test.e.Path {
				t.Errorf(expectedGotMsg, test.e.Path, apiErr.URL)
			}
		})
	}
}

func TestBuildRequestDefaults(t *testing.T) {
	req, err := Endpoint{Path: "/api/ping"}.BuildRequest(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildRequest() returned error: %v", err)
	}

	if req.Method != http.MethodGet {
		t.Errorf(expectedGotMsg, http.MethodGet, req.Method)
	}
	if req.Body != nil {
		t.Error("Expected no body for GET")
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Errorf(expectedGotMsg, "application/json", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf(expectedGotMsg, "application/json", got)
	}
}

func TestBuildRequestEncodesBody(t *testing.T) {
	e := Endpoint{
		Method: MethodPost,
		Path:   "/api/heros/all",
		Body:   map[string]string{"name": "goku"},
	}
	req, err := e.BuildRequest(context.Background(), DefaultCodec)
	if err != nil {
		t.Fatalf("BuildRequest() returned error: %v", err)
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != `{"name":"goku"}` {
		t.Errorf(expectedGotMsg, `{"name":"goku"}`, string(body))
	}
}

func TestBuildRequestIgnoresBodyForGet(t *testing.T) {
	e := Endpoint{Path: "/a", Body: map[string]string{"ignored": "yes"}}
	req, err := e.BuildRequest(context.Background(), DefaultCodec)
	if err != nil {
		t.Fatalf("BuildRequest() returned error: %v", err)
	}
	if req.Body != nil {
		t.Error("Expected GET to carry no body")
	}
}

func TestBuildRequestHeaderOverride(t *testing.T) {
	e := Endpoint{
		Path: "/a",
		Headers: map[string]string{
			"Content-Type":  "text/plain",
			"Authorization": "Basic YTpi",
		},
	}
	req, err := e.BuildRequest(context.Background(), DefaultCodec)
	if err != nil {
		t.Fatalf("BuildRequest() returned error: %v", err)
	}

	if got := req.Header.Get("Content-Type"); got != "text/plain" {
		t.Errorf(expectedGotMsg, "text/plain", got)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Errorf(expectedGotMsg, "application/json", got)
	}
	if got := req.Header.Get("Authorization"); got != "Basic YTpi" {
		t.Errorf(expectedGotMsg, "Basic YTpi", got)
	}
}

type failingCodec struct{ JSONCodec }

func (failingCodec) Marshal(any) ([]byte, error) {
	return nil, errors.New("cannot encode")
}

func TestBuildRequestUnencodableBody(t *testing.T) {
	e := Endpoint{Method: MethodPost, Path: "/a", Body: struct{}{}}
	_, err := e.BuildRequest(context.Background(), failingCodec{})

	if !errors.Is(err, ErrParseData) {
		t.Fatalf("Expected ParseData, got %v", err)
	}
}

func TestBuildRequestMalformed(t *testing.T) {
	_, err := Endpoint{Path: "no-slash"}.BuildRequest(context.Background(), DefaultCodec)
	if !errors.Is(err, ErrMalformedURL) {
		t.Fatalf("Expected MalformedURL, got %v", err)
	}
}

func TestBuildRequestCustomMethod(t *testing.T) {
	req, err := Endpoint{Method: MethodUpdate, Path: "/a"}.BuildRequest(context.Background(), DefaultCodec)
	if err != nil {
		t.Fatalf("BuildRequest() returned error: %v", err)
	}
	if req.Method != "UPDATE" {
		t.Errorf(expectedGotMsg, "UPDATE", req.Method)
	}
}
