package api

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasttemplate"
)

// Explanations shown next to each status code. Tags: {{method}}, {{path}},
// {{status}}, {{statusText}}, {{expected}}, {{expectedText}}.
var statusDescriptions = map[int]string{
	0:                              "The request to {{path}} never got a response. The API may be down, unreachable from this host, or blocked by the network.",
	http.StatusOK:                  "OK: the server handled {{method}} {{path}} and returned the result in the response body.",
	http.StatusCreated:             "Created: the server stored a new resource and returned it, including the id it assigned.",
	http.StatusNoContent:           "No Content: the server handled {{method}} {{path}} and has nothing to send back.",
	http.StatusBadRequest:          "Bad Request: the server rejected the payload. Check that name is a non-empty string and quantity is a number.",
	http.StatusUnauthorized:        "Unauthorized: the request carried no valid credentials. Log in or send a bearer token and try again.",
	http.StatusForbidden:           "Forbidden: the server knows who is asking but will not allow {{method}} {{path}} for this caller.",
	http.StatusNotFound:            "Not Found: nothing exists at {{path}}. The item may already be deleted or the id is wrong.",
	http.StatusConflict:            "Conflict: the request clashes with the current state of the resource.",
	http.StatusTeapot:              "I'm a teapot: the server refuses to brew coffee because it is, permanently, a teapot (RFC 2324).",
	http.StatusUnprocessableEntity: "Unprocessable Entity: the JSON was well formed but its values failed validation.",
	http.StatusInternalServerError: "Internal Server Error: something broke on the server while handling {{method}} {{path}}. The client request may be fine.",
	http.StatusBadGateway:          "Bad Gateway: a proxy in front of the API got an invalid answer from it.",
	http.StatusServiceUnavailable:  "Service Unavailable: the API is overloaded or down for maintenance.",
}

const (
	genericSuccess     = "{{status}} {{statusText}}: the server accepted {{method}} {{path}}."
	genericClientError = "{{status}} {{statusText}}: the server refused {{method}} {{path}} because of something in the request."
	genericServerError = "{{status}} {{statusText}}: the server failed while handling {{method}} {{path}}."
	genericOther       = "{{status}} {{statusText}}: unexpected response to {{method}} {{path}}."

	unexpectedSuccess = "Unexpected success: this request was built to fail with {{expected}} {{expectedText}}, " +
		"but the server answered {{status}} {{statusText}}. The API may not support this failure mode."
)

// Describe explains status in plain words. vars fills the template tags.
func Describe(status int, vars map[string]interface{}) string {
	tmpl, ok := statusDescriptions[status]
	if !ok {
		switch {
		case status >= 200 && status < 300:
			tmpl = genericSuccess
		case status >= 400 && status < 500:
			tmpl = genericClientError
		case status >= 500 && status < 600:
			tmpl = genericServerError
		default:
			tmpl = genericOther
		}
	}
	return render(tmpl, vars)
}

// DescribeUnexpectedSuccess explains a 2xx answer to a request meant to fail.
func DescribeUnexpectedSuccess(expected int, vars map[string]interface{}) string {
	v := make(map[string]interface{}, len(vars)+2)
	for k, val := range vars {
		v[k] = val
	}
	v["expected"] = strconv.Itoa(expected)
	v["expectedText"] = http.StatusText(expected)
	return render(unexpectedSuccess, v)
}

func describeVars(ex *Exchange) map[string]interface{} {
	path := ex.Title
	if len(ex.Method) < len(path) {
		path = path[len(ex.Method)+1:]
	}
	return map[string]interface{}{
		"method":     ex.Method,
		"path":       path,
		"status":     strconv.Itoa(ex.Status),
		"statusText": ex.StatusText,
	}
}

func render(tmpl string, vars map[string]interface{}) string {
	return fasttemplate.New(tmpl, "{{", "}}").ExecuteString(vars)
}
