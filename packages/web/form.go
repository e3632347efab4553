package web

import (
	"net/http"

	"github.com/abdul-hamid-achik/userportal/packages/output"
	"github.com/abdul-hamid-achik/userportal/packages/portal"
)

const (
	intentSelect = "select"
	intentSend   = "send"
)

// submission is the decoded form post.
type submission struct {
	Intent string
	Action portal.Action
	Target portal.Target
	Values portal.Values
}

type actionOption struct {
	Value    string
	Label    string
	Selected bool
}

type fieldInput struct {
	Name  string
	Value string
}

type page struct {
	BaseURL string
	Token   string
	Actions []actionOption
	Spec    portal.Spec
	Fields  []fieldInput
	View    *output.View
	Error   string
}

// allFields is every field any action uses, so switching actions keeps
// what the operator already typed.
func allFields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range portal.Specs() {
		for _, f := range spec.Fields {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// parseSubmission reads the posted form. An unknown action falls back to
// the first one rather than failing the page.
func parseSubmission(r *http.Request) (*submission, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	action, err := portal.ParseAction(r.PostForm.Get("action"))
	if err != nil {
		action = portal.ActionGetUser
	}

	values := make(portal.Values)
	for _, f := range allFields() {
		values[f] = r.PostForm.Get(f)
	}

	return &submission{
		Intent: r.PostForm.Get("intent"),
		Action: action,
		Target: portal.Target{
			BaseURL: r.PostForm.Get("base_url"),
			Token:   r.PostForm.Get("token"),
		},
		Values: values,
	}, nil
}

func newPage(sub *submission) *page {
	spec, ok := portal.Lookup(sub.Action)
	if !ok {
		spec = portal.Specs()[0]
	}

	p := &page{
		BaseURL: sub.Target.BaseURL,
		Token:   sub.Target.Token,
		Spec:    spec,
	}
	for _, s := range portal.Specs() {
		p.Actions = append(p.Actions, actionOption{
			Value:    string(s.Action),
			Label:    s.Label,
			Selected: s.Action == spec.Action,
		})
	}
	for _, f := range spec.Fields {
		p.Fields = append(p.Fields, fieldInput{Name: f, Value: sub.Values[f]})
	}
	return p
}
