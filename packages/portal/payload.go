package portal

import (
	"bytes"
	"encoding/json"
)

// Payload is an ordered field mapping. It marshals as a JSON object whose
// keys follow insertion order.
type Payload struct {
	keys   []string
	values map[string]string
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]string)}
}

// Set adds or replaces key. A new key is appended to the end.
func (p *Payload) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Payload) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Payload) Len() int {
	return len(p.keys)
}

// WithoutEmpty returns a copy holding only non-empty values.
func (p *Payload) WithoutEmpty() *Payload {
	out := NewPayload()
	for _, k := range p.keys {
		if v := p.values[k]; v != "" {
			out.Set(k, v)
		}
	}
	return out
}

func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
