// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package cinp is a client for the CInP protocol (Concise Interaction Protocol, version 0.9),
// a resource oriented JSON-over-HTTP RPC protocol.
//
// CInP addresses everything with uris of the form
//
//	/namespace/.../Model:id1:id2:...:(action)
//
// and uses its own request methods: GET, CREATE, UPDATE, DELETE, LIST, CALL and DESCRIBE.
// Several objects can be fetched or updated at once by listing their ids in one uri.
//
// # Quick Start
//
//	client, err := cinp.NewClient("http://contractor:8888")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	res, err := client.Get(ctx, "/api/v1/Site/Site:site1:")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.GetValue("description").String())
//
// # Authentication
//
// Credentials are per client. After a login exchange store them with SetAuth;
// every later request carries the Auth-Id and Auth-Token headers:
//
//	res, err := client.Call(ctx, "/api/v1/Auth/User(login)",
//	    map[string]any{"username": "admin", "password": "secret"})
//	client.SetAuth("admin", res.Data.(string))
//
// SetAuth with an empty token clears them.
//
// # Filtered Objects
//
// GetFilteredObjects collapses "LIST then GET each" into one LIST plus one batched GET:
//
//	structures, err := client.GetFilteredObjects(ctx, "/api/v1/Building/Structure", "site",
//	    map[string]any{"site": "/api/v1/Site/Site:site1:"})
//
// # Error Handling
//
// Failed requests return a *CinpError. Its Kind (and errors.Is with the sentinel
// errors) tells communication failures, invalid requests (400), invalid sessions (401),
// authorization failures (403), missing objects (404), server errors (500) and other
// statuses apart:
//
//	_, err := client.Get(ctx, uri)
//	switch {
//	case errors.Is(err, cinp.ErrNotFound):
//	    // gone
//	case errors.Is(err, cinp.ErrInvalidSession):
//	    // log in again
//	}
//
// A server error additionally invokes the handler registered with
// WithServerErrorHandler before the operation returns. Nothing is retried.
//
// # Logging
//
// Logging is disabled by default. Enable it with WithLogger, using DefaultLogger,
// the go-hclog adapter HclogLogger or a custom Logger. Bodies logged at Debug level
// are redacted first.
package cinp
