// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"context"
	"fmt"
)

// GetMulti fetches the objects with the given ids of the model addressed by uri
//
// All ids go into one batched GET (/ns/Model:id1:id2:...:idN:) with multi mode forced,
// the result maps each object's uri to its body. An empty id list returns an empty
// map without any request.
//
// The GetChunkSize modifier is accepted but has no effect; large id lists produce
// one long uri.
func (c *Client) GetMulti(ctx context.Context, uri string, ids []string, mods ...func(*Req)) (map[string]any, error) {
	parts, err := SplitURI(uri)
	if err != nil {
		return nil, fmt.Errorf("get multi: %w", err)
	}

	if len(ids) == 0 {
		return map[string]any{}, nil
	}

	req := newReq(mods)
	if len(ids) > req.GetChunkSize {
		c.logger.Debug(ctx, "batched GET exceeds get chunk size, sending one request",
			"uri", uri,
			"ids", len(ids),
			"get_chunk_size", req.GetChunkSize)
	}

	batchURI := parts.WithIDs(ids...).String()

	getMods := append(append([]func(*Req){}, mods...), ForceMultiMode(true))
	res, err := c.Get(ctx, batchURI, getMods...)
	if err != nil {
		return nil, err
	}

	return objectsByURI(res)
}

// GetFilteredObjects lists a model through a server-side filter and resolves the result
// to full objects
//
// One LIST (position 0, count ListChunkSize, default 100) is followed by one batched GET
// of every listed id. Results beyond the first ListChunkSize entries are not fetched;
// callers needing more must page with List themselves. Objects may change between the
// two requests.
//
// The batched GET uri grows with the number of ids and is not capped by the client;
// a server or proxy refusing long request lines reports that as its own error.
//
// Example:
//
//	foundations, err := client.GetFilteredObjects(ctx, "/api/v1/Building/Foundation", "site",
//	    map[string]any{"site": "/api/v1/Site/Site:site1:"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for uri, foundation := range foundations {
//	    fmt.Println(uri, foundation.(map[string]any)["state"])
//	}
func (c *Client) GetFilteredObjects(ctx context.Context, uri string, filterName string, filterValues any, mods ...func(*Req)) (map[string]any, error) {
	req := newReq(mods)
	if req.ListChunkSize <= 0 {
		return nil, fmt.Errorf("get filtered objects: list chunk size must be positive, got: %d", req.ListChunkSize)
	}

	listMods := append(append([]func(*Req){}, mods...), Position(0), Count(req.ListChunkSize))
	list, err := c.List(ctx, uri, filterName, filterValues, listMods...)
	if err != nil {
		return nil, err
	}

	ids, err := list.IDs()
	if err != nil {
		return nil, fmt.Errorf("get filtered objects: %w", err)
	}

	c.logger.Debug(ctx, "filtered objects listed",
		"uri", uri,
		"filter", filterName,
		"ids", len(ids),
		"total", list.Total)

	return c.GetMulti(ctx, uri, ids, mods...)
}

// objectsByURI converts a multi-object GET body into a uri to object map
func objectsByURI(res GetRes) (map[string]any, error) {
	if res.IsNull() {
		return map[string]any{}, nil
	}

	objects, ok := res.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get multi: expected an object keyed by uri, got %T", res.Data)
	}
	return objects, nil
}
