package alexa

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// Validate checks the structural fields every directive must carry.
// Endpoint and payload requirements are directive specific and checked when
// the directive is parsed.
func (m *Request) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("directive", "body", m.Directive); err != nil {
		return err
	}

	if err := validate.Required("directive.header", "body", m.Directive.Header); err != nil {
		return err
	}

	if err := validate.RequiredString("directive.header.namespace", "body", m.Directive.Header.Namespace); err != nil {
		res = append(res, err)
	}

	if err := validate.RequiredString("directive.header.name", "body", m.Directive.Header.Name); err != nil {
		res = append(res, err)
	}

	if m.Directive.Endpoint != nil {
		if err := validate.RequiredString("directive.endpoint.endpointId", "body", m.Directive.Endpoint.EndpointID); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// RequireEndpointID fails when the directive is not addressed to an endpoint
func (m *Request) RequireEndpointID() (string, error) {
	id := m.EndpointID()
	if err := validate.RequiredString("directive.endpoint.endpointId", "body", id); err != nil {
		return "", err
	}

	return id, nil
}
