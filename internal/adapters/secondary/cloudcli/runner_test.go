package cloudcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no newline", `{"a": 1}`, `{"a": 1}`},
		{"trailing newline kept", "{\"a\": 1}\n", "{\"a\": 1}\n"},
		{"progress fragment dropped", "[]\nUpdating service", "[]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimOutput([]byte(tt.in)))
		})
	}
}
