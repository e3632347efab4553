package portal

import (
	"encoding/json"
	"fmt"

	uphttp "github.com/abdul-hamid-achik/userportal/packages/http"
)

// Target is where requests go and with which credential.
type Target struct {
	BaseURL string
	Token   string
}

// Values holds the operator's raw field input keyed by field name.
// Missing keys count as empty.
type Values map[string]string

// Build produces the outbound request for action.
//
// GET sends user_id as a query parameter even when empty and never attaches
// the token. PATCH and POST send a JSON body with empty fields removed and
// attach "Authorization: Bearer <token>" only when the token is non-empty.
func Build(action Action, target Target, values Values) (*uphttp.Request, error) {
	spec, ok := Lookup(action)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", action)
	}

	// The base URL is used exactly as typed.
	req := uphttp.NewRequest(spec.Method, target.BaseURL+spec.Path)
	req.SetHeader("Accept", "application/json")

	if !spec.Mutating {
		for _, f := range spec.Fields {
			req.SetQueryParam(f, values[f])
		}
		return req, nil
	}

	body, err := json.Marshal(BuildPayload(spec, values))
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", spec.Title(), err)
	}
	req.SetBody(body)
	req.SetHeader("Content-Type", "application/json")
	if target.Token != "" {
		req.SetHeader("Authorization", "Bearer "+target.Token)
	}
	return req, nil
}

// BuildPayload collects spec's fields from values in form order and drops
// empty entries. Values are not trimmed: " " is sent as is.
func BuildPayload(spec Spec, values Values) *Payload {
	p := NewPayload()
	for _, f := range spec.Fields {
		p.Set(f, values[f])
	}
	return p.WithoutEmpty()
}
