package alexa

import (
	"encoding/json"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

/*
 *  Smart Home Skill API (payload version 3) message envelopes
 */

const PayloadVersion = "3"

// Request is the envelope posted by the assistant for every directive
type Request struct {
	Directive *Directive `json:"directive"`
}

type Directive struct {
	Header   *Header         `json:"header"`
	Endpoint *Endpoint       `json:"endpoint,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type Header struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	PayloadVersion   string `json:"payloadVersion"`
	MessageID        string `json:"messageId"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

type Scope struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

type Endpoint struct {
	Scope      *Scope            `json:"scope,omitempty"`
	EndpointID string            `json:"endpointId"`
	Cookie     map[string]string `json:"cookie,omitempty"`
}

// Response is the envelope returned for every directive, including failures
type Response struct {
	Event   *Event   `json:"event"`
	Context *Context `json:"context,omitempty"`
}

type Event struct {
	Header   *Header     `json:"header"`
	Endpoint *Endpoint   `json:"endpoint,omitempty"`
	Payload  interface{} `json:"payload"`
}

type Context struct {
	Properties []*Property `json:"properties,omitempty"`
}

// Property is one reported state value of an endpoint
type Property struct {
	Namespace                 string          `json:"namespace"`
	Name                      string          `json:"name"`
	Value                     interface{}     `json:"value"`
	TimeOfSample              strfmt.DateTime `json:"timeOfSample"`
	UncertaintyInMilliseconds int64           `json:"uncertaintyInMilliseconds"`
}

// NewHeader returns an event header with a fresh message ID
func NewHeader(namespace, name, correlationToken string) *Header {
	return &Header{
		Namespace:        namespace,
		Name:             name,
		PayloadVersion:   PayloadVersion,
		MessageID:        uuid.New().String(),
		CorrelationToken: correlationToken,
	}
}

// Key returns the routing pair of the directive, or empty strings when the
// header is missing
func (r *Request) Key() (namespace string, name string) {
	if r == nil || r.Directive == nil || r.Directive.Header == nil {
		return "", ""
	}

	return r.Directive.Header.Namespace, r.Directive.Header.Name
}

// EndpointID returns the addressed endpoint ID, or an empty string
func (r *Request) EndpointID() string {
	if r == nil || r.Directive == nil || r.Directive.Endpoint == nil {
		return ""
	}

	return r.Directive.Endpoint.EndpointID
}

// CorrelationToken returns the token to echo back in the event header
func (r *Request) CorrelationToken() string {
	if r == nil || r.Directive == nil || r.Directive.Header == nil {
		return ""
	}

	return r.Directive.Header.CorrelationToken
}
