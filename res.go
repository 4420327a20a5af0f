// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"github.com/tidwall/gjson"
)

// rawBody is embedded by every result type that carries a response body
type rawBody struct {
	// Raw is the undecoded JSON body, nil when the server sent none
	Raw []byte
}

// GetValue retrieves a value from the response body using a gjson path.
//
// Example:
//
//	res, err := client.Get(ctx, "/api/v1/Building/Foundation:web01:")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state := res.GetValue("state").String()
//	site := res.GetValue("site").String()
//
// Returns an empty gjson.Result when there is no body.
func (r rawBody) GetValue(path string) gjson.Result {
	if r.Raw == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Raw, path)
}

// JSON returns the response body as a string, "" when there is none
func (r rawBody) JSON() string {
	return string(r.Raw)
}

// IsNull reports whether the server sent no body or a JSON null
func (r rawBody) IsNull() bool {
	return r.Raw == nil || gjson.ParseBytes(r.Raw).Type == gjson.Null
}

// GetRes represents a CInP GET response
type GetRes struct {
	rawBody

	// Data is the decoded body
	Data any

	// MultiObject is the Multi-Object response header; when true Data maps uri to object
	MultiObject bool
}

// CreateRes represents a CInP CREATE response
type CreateRes struct {
	rawBody

	// Data is the decoded body (the created object)
	Data any

	// ID is the Object-Id response header, the uri of the new object
	ID string
}

// UpdateRes represents a CInP UPDATE response
type UpdateRes struct {
	rawBody

	// Data is the decoded body (the updated object(s))
	Data any

	// MultiObject is the Multi-Object response header
	MultiObject bool
}

// ListRes represents a CInP LIST response
type ListRes struct {
	rawBody

	// Data is the decoded body, a list of uris
	Data any

	// Position, Count and Total come from the response headers, 0 when absent
	Position int
	Count    int
	Total    int
}

// URIs returns the uris contained in the LIST body, skipping null and non-string entries
func (r ListRes) URIs() []string {
	result := []string{}
	if r.Raw == nil {
		return result
	}
	gjson.ParseBytes(r.Raw).ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			result = append(result, value.String())
		}
		return true
	})
	return result
}

// IDs returns the ids of all uris in the LIST body, in order
func (r ListRes) IDs() ([]string, error) {
	if r.Raw == nil {
		return []string{}, nil
	}
	return extractIDsFromJSON(gjson.ParseBytes(r.Raw))
}

// CallRes represents a CInP CALL response
type CallRes struct {
	rawBody

	// Data is the decoded return value, nil for an empty body
	Data any

	// MultiObject is the Multi-Object response header
	MultiObject bool
}

// DescribeRes represents a CInP DESCRIBE response
//
// Exactly one of Namespace, Model, Action is set, matching Type.
// An unrecognized Type header yields the zero DescribeRes.
type DescribeRes struct {
	rawBody

	// Type is DescribeTypeNamespace, DescribeTypeModel, DescribeTypeAction or ""
	Type string

	Namespace *NamespaceDescription
	Model     *ModelDescription
	Action    *ActionDescription
}

// NamespaceDescription describes a namespace
type NamespaceDescription struct {
	Name          string
	Doc           string
	Path          string
	APIVersion    string
	MultiURIMax   int
	NamespaceList []string
	ModelList     []string
}

// ModelDescription describes a model
type ModelDescription struct {
	Name              string
	Doc               string
	Path              string
	ConstantList      map[string]any
	FieldList         []map[string]any
	ActionList        []string
	NotAllowedMethods []string
	ListFilters       map[string]any
}

// ActionDescription describes an action
type ActionDescription struct {
	Name          string
	Doc           string
	Path          string
	ReturnType    any
	Static        bool
	ParameterList []map[string]any
}

// parseDescription builds a DescribeRes from the Type header and body
//
// Returns ok == false for an unrecognized type.
func parseDescription(typ string, body []byte) (DescribeRes, bool) {
	data := gjson.ParseBytes(body)

	switch typ {
	case DescribeTypeNamespace:
		return DescribeRes{
			rawBody: rawBody{Raw: body},
			Type:    typ,
			Namespace: &NamespaceDescription{
				Name:          data.Get("name").String(),
				Doc:           data.Get("doc").String(),
				Path:          data.Get("path").String(),
				APIVersion:    data.Get("api-version").String(),
				MultiURIMax:   int(data.Get("multi-uri-max").Int()),
				NamespaceList: stringList(data.Get("namespaces")),
				ModelList:     stringList(data.Get("models")),
			},
		}, true
	case DescribeTypeModel:
		return DescribeRes{
			rawBody: rawBody{Raw: body},
			Type:    typ,
			Model: &ModelDescription{
				Name:              data.Get("name").String(),
				Doc:               data.Get("doc").String(),
				Path:              data.Get("path").String(),
				ConstantList:      objectMap(data.Get("constants")),
				FieldList:         objectList(data.Get("fields")),
				ActionList:        stringList(data.Get("actions")),
				NotAllowedMethods: stringList(firstOf(data, "not-allowed-methods", "not-allowed-metods")),
				ListFilters:       objectMap(data.Get("list-filters")),
			},
		}, true
	case DescribeTypeAction:
		return DescribeRes{
			rawBody: rawBody{Raw: body},
			Type:    typ,
			Action: &ActionDescription{
				Name:          data.Get("name").String(),
				Doc:           data.Get("doc").String(),
				Path:          data.Get("path").String(),
				ReturnType:    data.Get("return-type").Value(),
				Static:        data.Get("static").Bool(),
				ParameterList: objectList(firstOf(data, "parameters", "paramaters")),
			},
		}, true
	default:
		return DescribeRes{}, false
	}
}

// firstOf returns the first of the given keys present in data
func firstOf(data gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := data.Get(key); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	result := []string{}
	for _, item := range r.Array() {
		result = append(result, item.String())
	}
	return result
}

func objectList(r gjson.Result) []map[string]any {
	if !r.IsArray() {
		return nil
	}
	result := []map[string]any{}
	for _, item := range r.Array() {
		if m, ok := item.Value().(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

func objectMap(r gjson.Result) map[string]any {
	m, _ := r.Value().(map[string]any)
	return m
}
