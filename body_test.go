// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// TestBodySet tests basic Set operation
func TestBodySet(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		value    any
		wantJSON string
	}{
		{
			name:     "set string value",
			path:     "locator",
			value:    "web01",
			wantJSON: `{"locator":"web01"}`,
		},
		{
			name:     "set boolean value",
			path:     "has_dependancies",
			value:    true,
			wantJSON: `{"has_dependancies":true}`,
		},
		{
			name:     "set integer value",
			path:     "offset",
			value:    10,
			wantJSON: `{"offset":10}`,
		},
		{
			name:     "set nested value",
			path:     "config_values.hostname",
			value:    "web01",
			wantJSON: `{"config_values":{"hostname":"web01"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{}.Set(tt.path, tt.value)
			got, err := body.String()
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.wantJSON {
				t.Errorf("Expected JSON %s, got %s", tt.wantJSON, got)
			}
		})
	}
}

// TestBodyChaining tests method chaining across Set, SetRaw and Delete
func TestBodyChaining(t *testing.T) {
	body := Body{}.
		Set("locator", "web01").
		Set("site", "/api/v1/Site/Site:site1:").
		Set("description", "temp").
		SetRaw("config_values", `{"memory_size": 2048}`).
		Delete("description")

	got, err := body.String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gjson.Get(got, "locator").String() != "web01" {
		t.Errorf("Expected locator web01, got: %s", got)
	}
	if gjson.Get(got, "site").String() != "/api/v1/Site/Site:site1:" {
		t.Errorf("Expected site uri, got: %s", got)
	}
	if gjson.Get(got, "config_values.memory_size").Int() != 2048 {
		t.Errorf("Expected config_values.memory_size 2048, got: %s", got)
	}
	if gjson.Get(got, "description").Exists() {
		t.Errorf("Expected description to be deleted, got: %s", got)
	}
}

// TestBodyErrorPropagation tests that the first error is kept and later operations are no-ops
func TestBodyErrorPropagation(t *testing.T) {
	body := Body{}.
		Set("valid", "value1").
		Set("", "invalid-empty-path").
		Set("skipped", "value2").
		Delete("valid")

	got, err := body.String()
	if err == nil {
		t.Fatal("Expected error from empty path, got nil")
	}
	if !strings.Contains(err.Error(), "Set") {
		t.Errorf("Expected error message to contain 'Set', got: %v", err)
	}
	if !strings.Contains(got, "value1") {
		t.Errorf("Expected JSON to contain value1 (set before error), got: %s", got)
	}
	if strings.Contains(got, "value2") {
		t.Errorf("Expected JSON to NOT contain value2 (set after error), got: %s", got)
	}
	if body.Err() == nil {
		t.Error("Expected Err() to report the error")
	}
	if body.Res() != "" {
		t.Errorf("Expected Res() to be empty on error, got: %s", body.Res())
	}
	if b, err := body.Bytes(); err == nil || b != nil {
		t.Errorf("Expected Bytes() to fail with nil bytes, got %q, %v", b, err)
	}
}

// TestBodyImmutability tests that Body operations return new values
func TestBodyImmutability(t *testing.T) {
	body1 := Body{}.Set("name", "site1")
	body2 := body1.Set("name", "site2")

	if gjson.Get(body1.Res(), "name").String() != "site1" {
		t.Errorf("Expected body1 unchanged, got: %s", body1.Res())
	}
	if gjson.Get(body2.Res(), "name").String() != "site2" {
		t.Errorf("Expected body2 to carry new value, got: %s", body2.Res())
	}
}

// TestBodyEmptyBody tests behavior with an empty body
func TestBodyEmptyBody(t *testing.T) {
	got, err := Body{}.String()
	if err != nil {
		t.Fatalf("Expected no error for empty body, got: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty string for empty body, got: %s", got)
	}
}

// TestEncodeBody tests request body encoding
func TestEncodeBody(t *testing.T) {
	var nilMap map[string]any
	var nilSlice []string
	var nilPtr *struct{}

	tests := []struct {
		name     string
		body     any
		wantJSON string
		wantNil  bool
		wantErr  bool
	}{
		{name: "nil", body: nil, wantNil: true},
		{name: "nil map", body: nilMap, wantNil: true},
		{name: "nil slice", body: nilSlice, wantNil: true},
		{name: "nil pointer", body: nilPtr, wantNil: true},
		{name: "empty builder", body: Body{}, wantNil: true},
		{name: "empty raw message", body: json.RawMessage{}, wantNil: true},
		{
			name:     "map",
			body:     map[string]any{"site": "/api/v1/Site/Site:site1:"},
			wantJSON: `{"site":"/api/v1/Site/Site:site1:"}`,
		},
		{
			name:     "empty map is sent",
			body:     map[string]any{},
			wantJSON: `{}`,
		},
		{
			name:     "builder",
			body:     Body{}.Set("name", "site2"),
			wantJSON: `{"name":"site2"}`,
		},
		{
			name:     "raw message",
			body:     json.RawMessage(`{"a":1}`),
			wantJSON: `{"a":1}`,
		},
		{
			name:     "string",
			body:     "hello",
			wantJSON: `"hello"`,
		},
		{name: "invalid raw message", body: json.RawMessage(`{`), wantErr: true},
		{name: "builder with error", body: Body{}.Set("", "x"), wantErr: true},
		{name: "unencodable value", body: map[string]any{"ch": make(chan int)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeBody(tt.body)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got body %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no body, got %s", got)
				}
				return
			}
			if string(got) != tt.wantJSON {
				t.Errorf("Expected %s, got %s", tt.wantJSON, got)
			}
		})
	}
}

// TestBodySetRef tests object reference fields
func TestBodySetRef(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantJSON string
		wantErr  bool
	}{
		{name: "single object", uri: "/api/v1/Site/Site:site1:", wantJSON: `{"site":"/api/v1/Site/Site:site1:"}`},
		{name: "collection", uri: "/api/v1/Site/Site", wantErr: true},
		{name: "multiple ids", uri: "/api/v1/Site/Site:a:b:", wantErr: true},
		{name: "action", uri: "/api/v1/Site/Site:a:(getConfig)", wantErr: true},
		{name: "malformed", uri: "Site:a:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{}.SetRef("site", tt.uri)
			if tt.wantErr {
				if !errors.Is(body.Err(), ErrMalformedURI) {
					t.Errorf("Err() = %v, want ErrMalformedURI", body.Err())
				}
				return
			}
			if got := body.Res(); got != tt.wantJSON {
				t.Errorf("Res() = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

// TestBodySetRefs tests many-to-many reference fields
func TestBodySetRefs(t *testing.T) {
	body := Body{}.SetRefs("members", []string{"/api/v1/Building/Structure:1:", "/api/v1/Building/Structure:2:"})
	want := `{"members":["/api/v1/Building/Structure:1:","/api/v1/Building/Structure:2:"]}`
	if got := body.Res(); got != want {
		t.Errorf("Res() = %s, want %s", got, want)
	}

	if got := (Body{}).SetRefs("members", nil).Res(); got != `{"members":[]}` {
		t.Errorf("nil refs = %s", got)
	}

	if err := (Body{}).SetRefs("members", []string{"bad"}).Err(); !errors.Is(err, ErrMalformedURI) {
		t.Errorf("Err() = %v, want ErrMalformedURI", err)
	}
}

// BenchmarkBodySet benchmarks the Set operation
func BenchmarkBodySet(b *testing.B) {
	b.Run("single set", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = Body{}.Set("name", "value")
		}
	})

	b.Run("create values", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = Body{}.
				Set("locator", "web01").
				Set("site", "/api/v1/Site/Site:site1:").
				Set("blueprint", "/api/v1/BluePrint/FoundationBluePrint:manual-foundation-base:")
		}
	})
}
