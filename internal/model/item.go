package model

// Item is a record owned by the items API. IDs are assigned by the server.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ItemInput is the body of POST /items and PUT /items/{id}.
type ItemInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity"`
}

// ItemList is the body of GET /items. Order is whatever the server returned.
type ItemList struct {
	Items           []Item         `json:"items"`
	RequestExamples map[string]any `json:"requestExamples,omitempty"`
}

// ErrorBody is the payload the API sends with non-2xx responses.
type ErrorBody struct {
	Error string `json:"error"`
}
