package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// NonexistentItemID is deleted by the not-found trigger.
const NonexistentItemID = 999999

// Trigger is a request built to make the API fail with Expected.
type Trigger struct {
	Name     string
	Label    string
	Expected int
	request  func() Request
}

func simulate(flag string) func() Request {
	return func() Request {
		return Request{
			Method: http.MethodGet,
			Path:   collectionPath,
			Query:  url.Values{"simulate": []string{flag}},
		}
	}
}

// Triggers in display order.
var Triggers = []Trigger{
	{
		Name: "bad-request", Label: "Invalid POST body", Expected: http.StatusBadRequest,
		request: func() Request {
			return Request{
				Method:  http.MethodPost,
				Path:    collectionPath,
				RawBody: []byte(`{"name":"","quantity":"not-a-number"}`),
			}
		},
	},
	{Name: "unauthorized", Label: "Missing credentials", Expected: http.StatusUnauthorized, request: simulate("unauthorized")},
	{Name: "forbidden", Label: "Forbidden access", Expected: http.StatusForbidden, request: simulate("forbidden")},
	{
		Name: "not-found", Label: "Delete missing item", Expected: http.StatusNotFound,
		request: func() Request {
			return Request{Method: http.MethodDelete, Path: ItemPath(NonexistentItemID)}
		},
	},
	{Name: "teapot", Label: "I'm a teapot", Expected: http.StatusTeapot, request: simulate("teapot")},
	{Name: "server-error", Label: "Server error", Expected: http.StatusInternalServerError, request: simulate("server-error")},
}

// LookupTrigger finds a trigger by name.
func LookupTrigger(name string) (Trigger, bool) {
	for _, t := range Triggers {
		if t.Name == name {
			return t, true
		}
	}
	return Trigger{}, false
}

// Request returns the request the trigger sends.
func (t Trigger) Request() Request { return t.request() }

// Diagnose runs trigger t. A non-2xx answer comes back as *HTTPError (the
// demoed failure); a 2xx answer comes back as *UnexpectedSuccessError with
// the exchange marked as not an error.
func (c *Client) Diagnose(ctx context.Context, t Trigger) (*Exchange, error) {
	ex, _, err := c.Do(ctx, t.Request())
	if err != nil {
		return ex, err
	}
	ex.IsError = false
	ex.Description = DescribeUnexpectedSuccess(t.Expected, describeVars(ex))
	return ex, &UnexpectedSuccessError{Trigger: t.Name, Expected: t.Expected, Status: ex.Status}
}

// IsUnexpectedSuccess reports whether err came from a diagnostic 2xx.
func IsUnexpectedSuccess(err error) bool {
	var us *UnexpectedSuccessError
	return errors.As(err, &us)
}
