package output

import (
	"encoding/json"
	"io"
	"os"
)

// JSONResult is the envelope written for one submission.
type JSONResult struct {
	Action     string          `json:"action"`
	Method     string          `json:"method,omitempty"`
	URL        string          `json:"url,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Duration   float64         `json:"duration"`
	JSON       json.RawMessage `json:"json,omitempty"`
	Text       *string         `json:"text,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatView(v *View) {
	out := JSONResult{
		Action:     string(v.Action),
		Method:     v.Method,
		URL:        v.URL,
		StatusCode: v.StatusCode,
		Duration:   float64(v.DurationMs),
		Error:      v.Error,
	}
	if !v.Failed() {
		if v.IsJSON {
			out.JSON = json.RawMessage(v.Body)
		} else {
			text := v.Text
			out.Text = &text
		}
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	encoder := json.NewEncoder(f.writer)
	_ = encoder.Encode(map[string]string{"error": err.Error()})
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}
