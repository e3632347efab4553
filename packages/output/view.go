package output

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/abdul-hamid-achik/userportal/packages/portal"
)

// View is what gets shown for one submission.
type View struct {
	Action     portal.Action
	Method     string
	URL        string
	StatusCode int
	Status     string
	DurationMs int64

	// IsJSON is set when the whole body parsed as a JSON value. Data holds
	// the parsed value and Pretty an indented rendering that keeps the
	// backend's key order.
	IsJSON bool
	Data   any
	Pretty string

	// Text is the body as received when it was not JSON.
	Text string
	Body []byte

	Error string
}

// Failed reports whether the request never produced a response.
func (v *View) Failed() bool {
	return v.Error != ""
}

// ErrorMessage is the banner shown for a transport failure.
func (v *View) ErrorMessage() string {
	if v.Error == "" {
		return ""
	}
	return "Request failed: " + v.Error
}

// Render converts a dispatcher result into a View.
func Render(res *portal.Result) *View {
	v := &View{
		Action:     res.Action,
		Method:     res.Method,
		URL:        res.URL,
		DurationMs: res.Duration.Milliseconds(),
	}

	if res.Err != nil {
		v.Error = res.Err.Error()
		return v
	}

	resp := res.Response
	v.StatusCode = resp.StatusCode
	v.Status = resp.Status
	v.Body = resp.Body

	data, err := resp.BodyJSON()
	if err != nil {
		v.Text = resp.BodyString()
		return v
	}
	v.IsJSON = true
	v.Data = data
	v.Pretty = string(pretty.Pretty(resp.Body))
	return v
}

// Select extracts one value from a JSON body using a gjson path such as
// "name" or "users.0.email". Strings come back unquoted; objects and arrays
// as JSON text.
func Select(v *View, path string) (string, error) {
	if v.Failed() {
		return "", fmt.Errorf("no response: %s", v.Error)
	}
	if !v.IsJSON {
		return "", fmt.Errorf("response body is not JSON")
	}
	r := gjson.GetBytes(v.Body, path)
	if !r.Exists() {
		return "", fmt.Errorf("field %q not found in response", path)
	}
	if r.IsObject() || r.IsArray() {
		return string(pretty.Pretty([]byte(r.Raw))), nil
	}
	return r.String(), nil
}
