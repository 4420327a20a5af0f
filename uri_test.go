// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// TestSplitURI tests parsing of the addressing grammar
func TestSplitURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want URI
	}{
		{
			name: "root namespace",
			uri:  "/",
			want: URI{},
		},
		{
			name: "namespace",
			uri:  "/api/v1/",
			want: URI{Namespace: []string{"api", "v1"}},
		},
		{
			name: "model",
			uri:  "/api/v1/Site/Site",
			want: URI{Namespace: []string{"api", "v1", "Site"}, Model: "Site"},
		},
		{
			name: "single id",
			uri:  "/api/v1/Site/Site:site1:",
			want: URI{Namespace: []string{"api", "v1", "Site"}, Model: "Site", IDs: []string{"site1"}},
		},
		{
			name: "multiple ids",
			uri:  "/ns/Model:a:b:c:",
			want: URI{Namespace: []string{"ns"}, Model: "Model", IDs: []string{"a", "b", "c"}},
		},
		{
			name: "empty id segment",
			uri:  "/ns/Model:",
			want: URI{Namespace: []string{"ns"}, Model: "Model", IDs: []string{}},
		},
		{
			name: "empty id between delimiters",
			uri:  "/ns/Model::",
			want: URI{Namespace: []string{"ns"}, Model: "Model", IDs: []string{""}},
		},
		{
			name: "id with quote",
			uri:  "/ns/Model:o'brien:",
			want: URI{Namespace: []string{"ns"}, Model: "Model", IDs: []string{"o'brien"}},
		},
		{
			name: "static action",
			uri:  "/api/v1/Auth/User(login)",
			want: URI{Namespace: []string{"api", "v1", "Auth"}, Model: "User", Action: "login"},
		},
		{
			name: "object action",
			uri:  "/api/v1/Building/Foundation:web01:(getConfig)",
			want: URI{
				Namespace: []string{"api", "v1", "Building"},
				Model:     "Foundation",
				IDs:       []string{"web01"},
				Action:    "getConfig",
			},
		},
		{
			name: "model without namespace",
			uri:  "/Model:1:",
			want: URI{Model: "Model", IDs: []string{"1"}},
		},
		{
			name: "punctuation in names",
			uri:  "/a-b_c.d/M~*!:x.y:",
			want: URI{Namespace: []string{"a-b_c.d"}, Model: "M~*!", IDs: []string{"x.y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitURI(tt.uri)
			if err != nil {
				t.Fatalf("SplitURI(%q) error = %v", tt.uri, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitURI(%q) = %#v, want %#v", tt.uri, got, tt.want)
			}
		})
	}
}

// TestSplitURI_Malformed tests rejection of uris outside the grammar
func TestSplitURI_Malformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "empty", uri: ""},
		{name: "relative", uri: "api/v1/"},
		{name: "space", uri: "/api/v1/Site Site"},
		{name: "slash in id", uri: "/ns/Model:a/b:"},
		{name: "unterminated id", uri: "/ns/Model:a"},
		{name: "empty action", uri: "/ns/Model()"},
		{name: "quote in action", uri: "/ns/Model(it's)"},
		{name: "trailing garbage", uri: "/ns/Model:a:(act)x"},
		{name: "query string", uri: "/ns/Model?x=1"},
		{name: "double slash", uri: "//Model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitURI(tt.uri)
			if err == nil {
				t.Fatalf("SplitURI(%q) expected error", tt.uri)
			}
			if !errors.Is(err, ErrMalformedURI) {
				t.Errorf("expected ErrMalformedURI, got %v", err)
			}
		})
	}
}

// TestMustSplitURI tests the panicking variant
func TestMustSplitURI(t *testing.T) {
	if got := MustSplitURI("/ns/Model:1:"); got.Model != "Model" {
		t.Errorf("MustSplitURI() model = %q, want Model", got.Model)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustSplitURI() expected panic for malformed uri")
		}
	}()
	MustSplitURI("not a uri")
}

// TestURI_RoundTrip tests that rendering a parsed uri reproduces it
func TestURI_RoundTrip(t *testing.T) {
	uris := []string{
		"/",
		"/api/v1/",
		"/api/v1/Site/Site",
		"/api/v1/Site/Site:site1:",
		"/ns/Model:a:b:c:",
		"/ns/Model:",
		"/api/v1/Auth/User(login)",
		"/api/v1/Building/Foundation:web01:(getConfig)",
		"/ns/Model:a::b:",
	}

	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			parsed, err := SplitURI(uri)
			if err != nil {
				t.Fatalf("SplitURI(%q) error = %v", uri, err)
			}
			if got := parsed.String(); got != uri {
				t.Errorf("String() = %q, want %q", got, uri)
			}
		})
	}
}

// TestURI_Helpers tests NamespacePath, IsCollection and WithIDs
func TestURI_Helpers(t *testing.T) {
	model := MustSplitURI("/api/v1/Site/Site")
	if model.NamespacePath() != "/api/v1/Site/" {
		t.Errorf("NamespacePath() = %q", model.NamespacePath())
	}
	if !model.IsCollection() {
		t.Error("IsCollection() = false for model uri")
	}
	if (URI{}).NamespacePath() != "/" {
		t.Errorf("root NamespacePath() = %q", URI{}.NamespacePath())
	}

	action := MustSplitURI("/api/v1/Site/Site:old:(getConfig)")
	batch := action.WithIDs("a", "b")
	if got := batch.String(); got != "/api/v1/Site/Site:a:b:" {
		t.Errorf("WithIDs().String() = %q", got)
	}
	if batch.IsCollection() {
		t.Error("IsCollection() = true for uri with ids")
	}
	if action.Action != "getConfig" || action.IDs[0] != "old" {
		t.Errorf("WithIDs() modified the receiver: %#v", action)
	}

	batch.Namespace[0] = "changed"
	if action.Namespace[0] != "api" {
		t.Error("WithIDs() shares the namespace slice with the receiver")
	}

	if got := model.WithIDs().String(); got != "/api/v1/Site/Site:" {
		t.Errorf("WithIDs() without ids = %q", got)
	}
}

// TestExtractIDs tests id extraction over uri lists
func TestExtractIDs(t *testing.T) {
	tests := []struct {
		name    string
		uris    []string
		want    []string
		wantErr bool
	}{
		{
			name: "in order",
			uris: []string{"/api/v1/Site/Site:site1:", "/api/v1/Site/Site:site2:"},
			want: []string{"site1", "site2"},
		},
		{
			name: "multi id uris are flattened",
			uris: []string{"/ns/M:a:b:", "/ns/M:c:"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "duplicates kept",
			uris: []string{"/ns/M:a:", "/ns/M:a:"},
			want: []string{"a", "a"},
		},
		{
			name: "empty entries skipped",
			uris: []string{"", "/ns/M:a:", ""},
			want: []string{"a"},
		},
		{
			name: "uri without ids contributes nothing",
			uris: []string{"/ns/M", "/ns/M:b:"},
			want: []string{"b"},
		},
		{
			name: "empty input",
			uris: nil,
			want: []string{},
		},
		{
			name:    "malformed entry",
			uris:    []string{"/ns/M:a:", "bad uri"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractIDs(tt.uris)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedURI) {
					t.Fatalf("expected ErrMalformedURI, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractIDs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractIDs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// TestExtractIDsFromJSON tests id extraction from LIST bodies
func TestExtractIDsFromJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "array", body: `["/ns/M:a:","/ns/M:b:"]`, want: []string{"a", "b"}},
		{name: "array with null", body: `["/ns/M:a:",null,"/ns/M:b:"]`, want: []string{"a", "b"}},
		{name: "object values", body: `{"x":"/ns/M:a:"}`, want: []string{"a"}},
		{name: "single string", body: `"/ns/M:a:b:"`, want: []string{"a", "b"}},
		{name: "null", body: `null`, want: []string{}},
		{name: "empty array", body: `[]`, want: []string{}},
		{name: "non-string entries skipped", body: `[1,true,"/ns/M:z:"]`, want: []string{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractIDsFromJSON(gjson.Parse(tt.body))
			if err != nil {
				t.Fatalf("extractIDsFromJSON() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractIDsFromJSON() = %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, err := extractIDsFromJSON(gjson.Parse(`["/ns/M:a:","bad uri"]`)); !errors.Is(err, ErrMalformedURI) {
		t.Errorf("expected ErrMalformedURI for malformed entry, got %v", err)
	}
}

// TestValidateURI tests the pre-send checks
func TestValidateURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantErrMsg string
	}{
		{name: "valid", uri: "/api/v1/Site/Site:site1:"},
		{name: "empty", uri: "", wantErrMsg: "uri cannot be empty"},
		{name: "long multi-id", uri: "/ns/M:" + strings.Repeat("0123456789abcdef:", 1000)},
		{name: "null byte", uri: "/ns/M\x00:", wantErrMsg: "null byte at position 5"},
		{name: "grammar", uri: "/ns/M:a", wantErrMsg: "malformed uri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURI(tt.uri)
			if tt.wantErrMsg == "" {
				if err != nil {
					t.Errorf("validateURI() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("validateURI() error = %v, want containing %q", err, tt.wantErrMsg)
			}
			if !errors.Is(err, ErrMalformedURI) {
				t.Errorf("expected ErrMalformedURI, got %v", err)
			}
		})
	}
}

// TestTruncateURI tests truncation for error messages
func TestTruncateURI(t *testing.T) {
	short := "/ns/M:a:"
	if truncateURI(short) != short {
		t.Errorf("truncateURI() changed short uri")
	}
	long := "/" + strings.Repeat("x", 200)
	got := truncateURI(long)
	if len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateURI() = %q (%d bytes)", got, len(got))
	}
}
