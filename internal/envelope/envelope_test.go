package envelope

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    int
		success bool
	}{
		{name: "unset defaults to 200", status: StatusUnset, code: 200, success: true},
		{name: "explicit 200", status: 200, code: 200, success: true},
		{name: "201 is not success", status: 201, code: 201, success: false},
		{name: "500 kept", status: 500, code: 500, success: false},
		{name: "lower bound kept", status: 100, code: 100, success: false},
		{name: "upper bound kept", status: 599, code: 599, success: false},
		{name: "999 coerced", status: 999, code: 400, success: false},
		{name: "600 coerced", status: 600, code: 400, success: false},
		{name: "negative coerced", status: -1, code: 400, success: false},
		{name: "99 coerced", status: 99, code: 400, success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Build("msg", tt.status)
			assert.Equal(t, tt.code, env.Code)
			assert.Equal(t, tt.success, env.Success)
			assert.Equal(t, "msg", env.Response)
		})
	}
}

func TestOK(t *testing.T) {
	env := OK(map[string]any{"a": 1})
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.Code)
}

func TestEnvelopeJSONShape(t *testing.T) {
	b, err := json.Marshal(Build(nil, http.StatusNotFound))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"response":null,"code":404}`, string(b))
}
