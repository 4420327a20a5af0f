// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package cinp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// response is a successful (2xx) CInP response
type response struct {
	StatusCode int
	Header     http.Header

	// Body is the raw JSON body, nil when the server sent none
	Body []byte
}

// request performs one CInP request and classifies the result
//
// The uri is validated against the addressing grammar before anything is sent.
// Non-2xx responses and transport failures are returned as *CinpError;
// a 500 response additionally goes to the server error handler first.
func (c *Client) request(ctx context.Context, method, uri string, body any, headers map[string]string, req *Req) (*response, error) {
	op := strings.ToLower(method)

	if err := validateURI(uri); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode body: %w", op, err)
	}

	ctx, cancel := c.createAttemptContext(ctx, req)
	defer cancel()

	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+uri, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderVersion, ProtocolVersion)
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}
	if id, token, ok := c.credentials(); ok {
		httpReq.Header.Set(HeaderAuthID, id)
		httpReq.Header.Set(HeaderAuthToken, token)
	}
	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}
	if payload != nil {
		httpReq.ContentLength = int64(len(payload))
		httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
		httpReq.Header.Set(HeaderContentLength, strconv.Itoa(len(payload)))
	}

	c.logger.Debug(ctx, "CInP request",
		"method", method,
		"uri", uri,
		"body", c.prepareJSONForLogging(string(payload)))

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error(ctx, "CInP request failed",
			"method", method,
			"uri", uri,
			"error", err.Error())
		return nil, &CinpError{Kind: KindCommunication, Method: method, URI: uri, Err: err}
	}
	defer httpResp.Body.Close() //nolint:errcheck // Body fully read below

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error(ctx, "CInP response read failed",
			"method", method,
			"uri", uri,
			"status", httpResp.StatusCode,
			"error", err.Error())
		return nil, &CinpError{Kind: KindCommunication, Method: method, URI: uri, StatusCode: httpResp.StatusCode, Err: err}
	}

	c.logger.Debug(ctx, "CInP response",
		"method", method,
		"uri", uri,
		"status", httpResp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"body", c.prepareJSONForLogging(string(respBody)))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logger.Error(ctx, "CInP request failed",
			"method", method,
			"uri", uri,
			"status", httpResp.StatusCode)
		return nil, c.classifyFailure(ctx, method, uri, httpResp.StatusCode, respBody)
	}

	res := &response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
	}

	if len(bytes.TrimSpace(respBody)) > 0 {
		if !json.Valid(respBody) {
			return nil, &CinpError{
				Kind:       KindCommunication,
				Method:     method,
				URI:        uri,
				StatusCode: httpResp.StatusCode,
				Err:        fmt.Errorf("invalid JSON in response body"),
			}
		}
		res.Body = respBody
	}

	return res, nil
}

// classifyFailure maps a non-2xx response onto a *CinpError
//
//	400 InvalidRequest (body "message" field, else raw body)
//	401 InvalidSession
//	403 NotAuthorized
//	404 NotFound
//	500 ServerError (body "message" / "trace", else raw body as message), server error handler invoked
//	*   Unknown (raw body)
//
// A body that is not JSON is treated as plain text; parsing never fails.
func (c *Client) classifyFailure(ctx context.Context, method, uri string, status int, body []byte) *CinpError {
	cerr := &CinpError{Method: method, URI: uri, StatusCode: status}

	var parsed gjson.Result
	isJSON := gjson.ValidBytes(body)
	if isJSON {
		parsed = gjson.ParseBytes(body)
	}

	switch status {
	case http.StatusBadRequest:
		cerr.Kind = KindInvalidRequest
		if isJSON && parsed.IsObject() && parsed.Get("message").Exists() {
			cerr.Detail = parsed.Get("message").String()
		} else {
			cerr.Detail = bodyText(body)
		}
	case http.StatusUnauthorized:
		cerr.Kind = KindInvalidSession
	case http.StatusForbidden:
		cerr.Kind = KindNotAuthorized
	case http.StatusNotFound:
		cerr.Kind = KindNotFound
	case http.StatusInternalServerError:
		cerr.Kind = KindServerError
		if isJSON && parsed.IsObject() {
			cerr.Message = parsed.Get("message").String()
			cerr.Trace = parsed.Get("trace").String()
		} else {
			cerr.Message = bodyText(body)
		}
		c.reportServerError(ctx, cerr.Message, cerr.Trace)
	default:
		cerr.Kind = KindUnknown
		cerr.Detail = bodyText(body)
	}

	return cerr
}

// bodyText returns a JSON string body decoded, anything else verbatim
func bodyText(body []byte) string {
	if gjson.ValidBytes(body) {
		if parsed := gjson.ParseBytes(body); parsed.Type == gjson.String {
			return parsed.String()
		}
	}
	return string(body)
}

// encodeBody JSON-encodes a request body
//
// A nil value (including nil maps, slices and pointers) means no body.
// A Body builder or json.RawMessage is sent verbatim.
func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	switch b := body.(type) {
	case Body:
		if err := b.Err(); err != nil {
			return nil, err
		}
		if b.Res() == "" {
			return nil, nil
		}
		return []byte(b.Res()), nil
	case json.RawMessage:
		if len(b) == 0 {
			return nil, nil
		}
		if !json.Valid(b) {
			return nil, fmt.Errorf("raw message is not valid JSON")
		}
		return b, nil
	}

	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
	}

	return json.Marshal(body)
}

// decodeData decodes a raw JSON body into generic Go values, nil for no body
func decodeData(body []byte) (any, error) {
	if body == nil {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// headerBool reads a boolean response header ("True", "true", "1")
func headerBool(header http.Header, name string) bool {
	value := strings.TrimSpace(header.Get(name))
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// headerInt reads an integer response header, 0 when missing or malformed
func headerInt(header http.Header, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(header.Get(name)))
	if err != nil {
		return 0
	}
	return n
}
