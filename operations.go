// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// multiObjectHeader returns the Multi-Object request header for req
func multiObjectHeader(req *Req) map[string]string {
	return map[string]string{HeaderMultiObject: strconv.FormatBool(req.MultiObject)}
}

// Get retrieves one or more objects
//
// The Multi-Object request header is always sent, false unless the ForceMultiMode
// modifier is given. A uri addressing several ids (Model:id1:id2:) returns a map of
// uri to object in Data.
//
// Example:
//
//	res, err := client.Get(ctx, "/api/v1/Site/Site:site1:")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.GetValue("name").String())
func (c *Client) Get(ctx context.Context, uri string, mods ...func(*Req)) (GetRes, error) {
	req := newReq(mods)

	resp, err := c.request(ctx, MethodGet, uri, nil, multiObjectHeader(req), req)
	if err != nil {
		return GetRes{}, err
	}

	data, err := decodeData(resp.Body)
	if err != nil {
		return GetRes{}, fmt.Errorf("get: failed to decode body: %w", err)
	}

	return GetRes{
		rawBody:     rawBody{Raw: resp.Body},
		Data:        data,
		MultiObject: headerBool(resp.Header, HeaderMultiObject),
	}, nil
}

// Create creates an object from values
//
// values can be any JSON-encodable value, a Body builder or a json.RawMessage.
// The uri of the new object is returned in CreateRes.ID.
//
// Example:
//
//	res, err := client.Create(ctx, "/api/v1/Site/Site", map[string]any{
//	    "name":        "site2",
//	    "description": "Second Site",
//	})
//	fmt.Println("created", res.ID)
func (c *Client) Create(ctx context.Context, uri string, values any, mods ...func(*Req)) (CreateRes, error) {
	req := newReq(mods)

	resp, err := c.request(ctx, MethodCreate, uri, values, nil, req)
	if err != nil {
		return CreateRes{}, err
	}

	data, err := decodeData(resp.Body)
	if err != nil {
		return CreateRes{}, fmt.Errorf("create: failed to decode body: %w", err)
	}

	return CreateRes{
		rawBody: rawBody{Raw: resp.Body},
		Data:    data,
		ID:      resp.Header.Get(HeaderObjectID),
	}, nil
}

// Update updates one or more objects with values
//
// Example:
//
//	body := cinp.Body{}.Set("description", "Primary Site")
//	res, err := client.Update(ctx, "/api/v1/Site/Site:site1:", body)
func (c *Client) Update(ctx context.Context, uri string, values any, mods ...func(*Req)) (UpdateRes, error) {
	req := newReq(mods)

	resp, err := c.request(ctx, MethodUpdate, uri, values, multiObjectHeader(req), req)
	if err != nil {
		return UpdateRes{}, err
	}

	data, err := decodeData(resp.Body)
	if err != nil {
		return UpdateRes{}, fmt.Errorf("update: failed to decode body: %w", err)
	}

	return UpdateRes{
		rawBody:     rawBody{Raw: resp.Body},
		Data:        data,
		MultiObject: headerBool(resp.Header, HeaderMultiObject),
	}, nil
}

// Delete deletes the addressed object(s)
//
// Returns nil on success. The server sends no body.
func (c *Client) Delete(ctx context.Context, uri string, mods ...func(*Req)) error {
	req := newReq(mods)

	_, err := c.request(ctx, MethodDelete, uri, nil, nil, req)
	return err
}

// List lists the uris of a model, optionally filtered
//
// filterName selects a server-side filter and is sent as the Filter header when non-empty;
// filterValues is the filter's parameter map, sent as the body when non-nil.
// Position and Count (modifiers, default 0 and 10) page the result.
//
// Example:
//
//	res, err := client.List(ctx, "/api/v1/Building/Foundation", "site",
//	    map[string]any{"site": "/api/v1/Site/Site:site1:"},
//	    cinp.Count(50))
//	fmt.Printf("%d-%d of %d\n", res.Position, res.Position+res.Count, res.Total)
//	for _, uri := range res.URIs() {
//	    fmt.Println(uri)
//	}
func (c *Client) List(ctx context.Context, uri string, filterName string, filterValues any, mods ...func(*Req)) (ListRes, error) {
	req := newReq(mods)

	if req.Position < 0 {
		return ListRes{}, fmt.Errorf("list: position must be non-negative, got: %d", req.Position)
	}
	if req.Count < 0 {
		return ListRes{}, fmt.Errorf("list: count must be non-negative, got: %d", req.Count)
	}

	headers := map[string]string{
		HeaderPosition: strconv.Itoa(req.Position),
		HeaderCount:    strconv.Itoa(req.Count),
	}
	if filterName != "" {
		headers[HeaderFilter] = filterName
	}

	resp, err := c.request(ctx, MethodList, uri, filterValues, headers, req)
	if err != nil {
		return ListRes{}, err
	}

	data, err := decodeData(resp.Body)
	if err != nil {
		return ListRes{}, fmt.Errorf("list: failed to decode body: %w", err)
	}

	return ListRes{
		rawBody:  rawBody{Raw: resp.Body},
		Data:     data,
		Position: headerInt(resp.Header, HeaderPosition),
		Count:    headerInt(resp.Header, HeaderCount),
		Total:    headerInt(resp.Header, HeaderTotal),
	}, nil
}

// Call invokes an action
//
// params is the action's parameter map (nil for none). An empty response body
// yields a nil Data.
//
// Example:
//
//	res, err := client.Call(ctx, "/api/v1/Building/Foundation:web01:(doCreate)", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("job:", res.Data)
func (c *Client) Call(ctx context.Context, uri string, params any, mods ...func(*Req)) (CallRes, error) {
	req := newReq(mods)

	resp, err := c.request(ctx, MethodCall, uri, params, multiObjectHeader(req), req)
	if err != nil {
		return CallRes{}, err
	}

	data, err := decodeData(resp.Body)
	if err != nil {
		return CallRes{}, fmt.Errorf("call: failed to decode body: %w", err)
	}

	return CallRes{
		rawBody:     rawBody{Raw: resp.Body},
		Data:        data,
		MultiObject: headerBool(resp.Header, HeaderMultiObject),
	}, nil
}

// Describe retrieves the description of a namespace, model or action
//
// The response Type header selects which of DescribeRes.Namespace, Model or Action is set.
// An unknown type is logged and returns an empty DescribeRes without error.
//
// Example:
//
//	res, err := client.Describe(ctx, "/api/v1/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Namespace != nil {
//	    fmt.Println(res.Namespace.APIVersion, res.Namespace.ModelList)
//	}
func (c *Client) Describe(ctx context.Context, uri string, mods ...func(*Req)) (DescribeRes, error) {
	req := newReq(mods)

	resp, err := c.request(ctx, MethodDescribe, uri, nil, nil, req)
	if err != nil {
		return DescribeRes{}, err
	}

	typ := resp.Header.Get(HeaderType)
	res, ok := parseDescription(typ, resp.Body)
	if !ok {
		c.logger.Warn(ctx, "Unknown type in Describe response",
			"uri", uri,
			"type", typ)
		return DescribeRes{}, nil
	}

	return res, nil
}

// checkContextCancellation checks if context is canceled or deadline exceeded
//
// Returns context.Canceled if context is canceled, context.DeadlineExceeded if
// deadline exceeded, or nil if context is still valid.
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// createAttemptContext derives the context for a single request
//
// Timeout priority model:
//  1. Request-specific timeout (req.Timeout > 0)
//  2. Existing context deadline
//  3. Client default timeout (c.OperationTimeout)
//
// Caller MUST call the returned cancel function.
func (c *Client) createAttemptContext(ctx context.Context, req *Req) (context.Context, context.CancelFunc) {
	if req != nil && req.Timeout > 0 {
		if req.Timeout < time.Second {
			c.logger.Warn(ctx, "request timeout is very short (may not complete)",
				"timeout", req.Timeout.String(),
				"host", c.Host)
		} else if req.Timeout > 5*time.Minute {
			c.logger.Warn(ctx, "request timeout is very long (may delay error detection)",
				"timeout", req.Timeout.String(),
				"host", c.Host)
		}

		return context.WithTimeout(ctx, req.Timeout)
	}

	if deadline, hasDeadline := ctx.Deadline(); hasDeadline {
		c.logger.Debug(ctx, "using existing context deadline",
			"remaining", time.Until(deadline).String(),
			"host", c.Host)
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.OperationTimeout)
}
