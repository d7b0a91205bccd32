// Package core holds the item domain: the entity, the storage port and the
// operations that map requests onto a single persistence call each.
package core

// Item is the central entity of the domain.
// Name is the business key used by Update and Delete; uniqueness is not
// enforced, so a name may match more than one stored record.
type Item struct {
	Name        string `json:"name" bson:"name" yaml:"name"`
	Description string `json:"description" bson:"description" yaml:"description"`
}

// DeleteRequest identifies the records removed by Delete.
type DeleteRequest struct {
	Name string `json:"name"`
}

type contextKey string

// RequestIDKey is the context key carrying the transport request id, used to
// correlate service logs with access logs.
const RequestIDKey contextKey = "request_id"
