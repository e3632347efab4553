package portal

import (
	"fmt"
	"strings"
)

// Action identifies one of the supported user-service calls.
type Action string

const (
	ActionGetUser   Action = "get"
	ActionPatchUser Action = "patch"
	ActionAddUser   Action = "add"
)

// Field names sent to the backend.
const (
	FieldUserID      = "user_id"
	FieldName        = "name"
	FieldCity        = "city"
	FieldAge         = "age"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
)

// Spec describes how an action maps to the wire.
type Spec struct {
	Action Action
	Label  string
	Method string
	Path   string
	Button string
	Note   string
	Fields []string
	// Mutating requests carry a JSON body, drop empty fields and send the
	// bearer token.
	Mutating bool
}

var specs = []Spec{
	{
		Action: ActionGetUser,
		Label:  "user GET",
		Method: "GET",
		Path:   "/user",
		Button: "Fetch user",
		Fields: []string{FieldUserID},
	},
	{
		Action:   ActionPatchUser,
		Label:    "user PATCH",
		Method:   "PATCH",
		Path:     "/user",
		Button:   "Update user",
		Note:     "Provide user_id and any fields to update. Inputs are sent exactly as entered.",
		Fields:   []string{FieldUserID, FieldName, FieldCity, FieldAge, FieldPhoneNumber, FieldEmail},
		Mutating: true,
	},
	{
		Action:   ActionAddUser,
		Label:    "add_user POST",
		Method:   "POST",
		Path:     "/add_user",
		Button:   "Add user",
		Note:     "Provide new user details. Inputs are sent exactly as entered.",
		Fields:   []string{FieldName, FieldCity, FieldAge, FieldPhoneNumber, FieldEmail},
		Mutating: true,
	},
}

// Specs returns every action in selector order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the spec for a.
func Lookup(a Action) (Spec, bool) {
	for _, s := range specs {
		if s.Action == a {
			return s, true
		}
	}
	return Spec{}, false
}

// ParseAction accepts an action name ("get"), its selector label
// ("user GET") or its HTTP method, case-insensitively.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	for _, spec := range specs {
		if strings.EqualFold(s, string(spec.Action)) ||
			strings.EqualFold(s, spec.Label) ||
			strings.EqualFold(s, spec.Method) {
			return spec.Action, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Title is the heading shown above the action's fields, e.g. "PATCH /user".
func (s Spec) Title() string {
	return s.Method + " " + s.Path
}
