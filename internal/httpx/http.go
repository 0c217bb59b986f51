// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package httpx provides a simpler http.Client abstraction and derivative uses.
package httpx

import (
	"net/http"
	"time"
)

// BasicClient is a simpler http.Client that only requires a Do method.
type BasicClient interface {
	Do(*http.Request) (*http.Response, error)
}

var _ BasicClient = http.DefaultClient

// WithUserAgent is a basic HTTP client that adds a User-Agent header.
type WithUserAgent struct {
	BasicClient
	UserAgent string
}

var _ BasicClient = &WithUserAgent{}

// Do adds the User-Agent header and sends the request.
func (c *WithUserAgent) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.UserAgent)
	return c.BasicClient.Do(req)
}

// RateLimitedClient throttles requests to at most one per tick, which is
// the crates.io-courteous way to fetch hundreds of candidate artifacts in
// a single run without tripping the registry's abuse protections.
type RateLimitedClient struct {
	BasicClient
	Ticker *time.Ticker
}

func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	<-c.Ticker.C
	return c.BasicClient.Do(req)
}

var _ BasicClient = &RateLimitedClient{}

// NoRedirectClient is a BasicClient that refuses to follow redirects,
// returning the redirect response itself instead. The crates.io download
// endpoint relies on exactly this: the caller must see the 302 and its
// Location header rather than be silently ferried to the CDN.
type NoRedirectClient struct {
	Client *http.Client
}

// NewNoRedirectClient wraps client so automatic redirect-following is disabled.
func NewNoRedirectClient(client *http.Client) *NoRedirectClient {
	cp := *client
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &NoRedirectClient{Client: &cp}
}

func (c *NoRedirectClient) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}

var _ BasicClient = &NoRedirectClient{}
