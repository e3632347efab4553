package portal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PatchScenario(t *testing.T) {
	req, err := Build(ActionPatchUser, Target{BaseURL: "http://api.local", Token: "abc123"}, Values{
		FieldUserID: "42",
		FieldName:   "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, "http://api.local/user", req.BuildURL())
	assert.Equal(t, `{"user_id":"42","name":"Alice"}`, string(req.Body))
	assert.Equal(t, "Bearer abc123", req.Headers["Authorization"])
	assert.Equal(t, "application/json", req.Headers["Accept"])
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestBuild_PostAllEmpty(t *testing.T) {
	req, err := Build(ActionAddUser, Target{BaseURL: "http://api.local"}, Values{})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "http://api.local/add_user", req.BuildURL())
	assert.Equal(t, `{}`, string(req.Body))
	assert.NotContains(t, req.Headers, "Authorization")
}

func TestBuild_GetEmptyUserID(t *testing.T) {
	req, err := Build(ActionGetUser, Target{BaseURL: "http://api.local", Token: "abc123"}, Values{FieldUserID: ""})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "http://api.local/user?user_id=", req.BuildURL())
	assert.Empty(t, req.Body)
	assert.NotContains(t, req.Headers, "Authorization")
	assert.Equal(t, "application/json", req.Headers["Accept"])
}

func TestBuild_GetMissingUserIDStillSent(t *testing.T) {
	req, err := Build(ActionGetUser, Target{BaseURL: "http://api.local"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/user?user_id=", req.BuildURL())
}

func TestBuild_MutatingNeverSendsEmptyValues(t *testing.T) {
	fields := []string{FieldUserID, FieldName, FieldCity, FieldAge, FieldPhoneNumber, FieldEmail}

	// Every subset of fields filled, the rest empty.
	for _, action := range []Action{ActionPatchUser, ActionAddUser} {
		for mask := 0; mask < 1<<len(fields); mask++ {
			values := Values{}
			for i, f := range fields {
				if mask&(1<<i) != 0 {
					values[f] = "v" + f
				} else {
					values[f] = ""
				}
			}

			req, err := Build(action, Target{BaseURL: "http://h"}, values)
			require.NoError(t, err)

			var body map[string]string
			require.NoError(t, json.Unmarshal(req.Body, &body))
			for k, v := range body {
				assert.NotEmpty(t, v, "action %s key %s", action, k)
			}
		}
	}
}

func TestBuild_TokenOnlyOnMutating(t *testing.T) {
	tests := []struct {
		action   Action
		token    string
		wantAuth bool
	}{
		{ActionGetUser, "", false},
		{ActionGetUser, "t", false},
		{ActionPatchUser, "", false},
		{ActionPatchUser, "t", true},
		{ActionAddUser, "", false},
		{ActionAddUser, "t", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.token, func(t *testing.T) {
			req, err := Build(tt.action, Target{BaseURL: "http://h", Token: tt.token}, Values{FieldUserID: "1"})
			require.NoError(t, err)
			auth, ok := req.Headers["Authorization"]
			assert.Equal(t, tt.wantAuth, ok)
			if tt.wantAuth {
				assert.Equal(t, "Bearer "+tt.token, auth)
			}
		})
	}
}

func TestBuild_ValuesForwardedVerbatim(t *testing.T) {
	req, err := Build(ActionAddUser, Target{BaseURL: "http://h"}, Values{
		FieldAge:   "forty two",
		FieldName:  " padded ",
		FieldEmail: "not-an-email",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":" padded ","age":"forty two","email":"not-an-email"}`, string(req.Body))
}

func TestBuild_AddIgnoresUserID(t *testing.T) {
	req, err := Build(ActionAddUser, Target{BaseURL: "http://h"}, Values{FieldUserID: "9", FieldCity: "Oslo"})
	require.NoError(t, err)
	assert.Equal(t, `{"city":"Oslo"}`, string(req.Body))
}

func TestBuild_UnknownAction(t *testing.T) {
	_, err := Build(Action("delete"), Target{BaseURL: "http://h"}, nil)
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"get", ActionGetUser, false},
		{"user GET", ActionGetUser, false},
		{"PATCH", ActionPatchUser, false},
		{"user patch", ActionPatchUser, false},
		{"add_user POST", ActionAddUser, false},
		{"post", ActionAddUser, false},
		{" add ", ActionAddUser, false},
		{"delete", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayload_OrderAndOverwrite(t *testing.T) {
	p := NewPayload()
	p.Set("b", "1")
	p.Set("a", "2")
	p.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, p.Keys())
	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"3","a":"2"}`, string(data))
}

func TestPayload_EscapesValues(t *testing.T) {
	p := NewPayload()
	p.Set("name", `quote " and <tag>`)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, `quote " and <tag>`, back["name"])
}
