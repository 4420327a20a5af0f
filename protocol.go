// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import "fmt"

// ProtocolVersion is the CInP protocol version sent with every request
const ProtocolVersion = "0.9"

// CInP request methods. These are sent as custom HTTP methods.
const (
	MethodGet      = "GET"
	MethodCreate   = "CREATE"
	MethodUpdate   = "UPDATE"
	MethodDelete   = "DELETE"
	MethodList     = "LIST"
	MethodCall     = "CALL"
	MethodDescribe = "DESCRIBE"
)

// ValidMethods contains the list of valid CInP methods
var ValidMethods = []string{
	MethodGet,
	MethodCreate,
	MethodUpdate,
	MethodDelete,
	MethodList,
	MethodCall,
	MethodDescribe,
}

// Header names used on the wire
const (
	HeaderAccept        = "Accept"
	HeaderVersion       = "CInP-Version"
	HeaderAuthID        = "Auth-Id"
	HeaderAuthToken     = "Auth-Token"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderMultiObject   = "Multi-Object"
	HeaderObjectID      = "Object-Id"
	HeaderFilter        = "Filter"
	HeaderPosition      = "Position"
	HeaderCount         = "Count"
	HeaderTotal         = "Total"
	HeaderType          = "Type"
)

// ContentTypeJSON is the only body encoding CInP speaks
const ContentTypeJSON = "application/json"

// Values of the Type header on DESCRIBE responses
const (
	DescribeTypeNamespace = "Namespace"
	DescribeTypeModel     = "Model"
	DescribeTypeAction    = "Action"
)

// ValidateMethod checks if the method is a CInP method
//
// Returns an error if the method is not one of the supported values.
//
// Example:
//
//	if err := cinp.ValidateMethod("LIST"); err != nil {
//	    log.Fatal(err)
//	}
func ValidateMethod(method string) error {
	for _, valid := range ValidMethods {
		if method == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid method: %s (valid values: GET, CREATE, UPDATE, DELETE, LIST, CALL, DESCRIBE)", method)
}
