package sanitize_test

import (
	"testing"

	"job-portal-backend/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := map[string]string{
		"":                                     "",
		"  plain text  ":                       "plain text",
		"<b>Go</b> developer":                  "Go developer",
		"<script>alert(1)</script>Hello":       "Hello",
		"R&D lead":                            "R&D lead",
		`<a href="javascript:x()">link</a> ok`: "link ok",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitize.Text(in), "input %q", in)
	}
}

func TestPtr(t *testing.T) {
	assert.Nil(t, sanitize.Ptr(nil))
	s := "<i>intro</i>"
	assert.Equal(t, "intro", *sanitize.Ptr(&s))
}
