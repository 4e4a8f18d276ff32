package dlyt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePolicyFailed(t *testing.T) {
	tests := []struct {
		name       string
		payload    any
		wantFailed bool
		wantCode   any
	}{
		{name: "not an object", payload: "text", wantFailed: false},
		{name: "empty object", payload: map[string]any{}, wantFailed: false},
		{name: "status zero", payload: map[string]any{"status": json.Number("0")}, wantFailed: false, wantCode: json.Number("0")},
		{name: "errno 20000", payload: map[string]any{"errno": json.Number("20000")}, wantFailed: false, wantCode: json.Number("20000")},
		{name: "status before code", payload: map[string]any{"status": json.Number("3"), "code": json.Number("0")}, wantFailed: true, wantCode: json.Number("3")},
		{name: "null skipped", payload: map[string]any{"status": nil, "errno": json.Number("200")}, wantFailed: false, wantCode: json.Number("200")},
		{name: "fraction", payload: map[string]any{"code": json.Number("200.5")}, wantFailed: true, wantCode: json.Number("200.5")},
		{name: "boolean", payload: map[string]any{"code": true}, wantFailed: true, wantCode: true},
		{name: "string", payload: map[string]any{"code": "0"}, wantFailed: true, wantCode: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, failed := DefaultCodePolicy.Failed(tt.payload)
			assert.Equal(t, tt.wantFailed, failed)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{name: "msg", payload: map[string]any{"msg": "a", "message": "b"}, want: "a"},
		{name: "message", payload: map[string]any{"message": "b"}, want: "b"},
		{name: "empty msg falls through", payload: map[string]any{"msg": "", "message": "b"}, want: "b"},
		{name: "numeric msg", payload: map[string]any{"msg": json.Number("42")}, want: "42"},
		{name: "zero msg is falsy", payload: map[string]any{"msg": json.Number("0")}, want: "fallback"},
		{name: "text payload", payload: "oops", want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMessage(tt.payload, "fallback"))
		})
	}
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "500", formatCode(json.Number("500")))
	assert.Equal(t, "1.5", formatCode(1.5))
	assert.Equal(t, "E01", formatCode("E01"))
	assert.Equal(t, "true", formatCode(true))
}
