package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMsisdn(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{name: "international prefix", raw: "+254712345678", want: "+254712345678", valid: true},
		{name: "local prefix", raw: "0712345678", want: "0712345678", valid: true},
		{name: "spaces stripped", raw: "+254 700 000 000", want: "+254700000000", valid: true},
		{name: "nine block", raw: "0799999999", want: "0799999999", valid: true},
		{name: "too short", raw: "12345", want: "12345", valid: false},
		{name: "leading six", raw: "0612345678", want: "0612345678", valid: false},
		{name: "empty", raw: "", want: "", valid: false},
		{name: "letters", raw: "07abc45678", want: "07abc45678", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMsisdn(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}
