package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_RemovesAllHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"script tag", `Chess night <script>alert('x')</script>`, `Chess night`},
		{"formatting", `<b>Robotics</b> <i>Club</i>`, `Robotics Club`},
		{"plain text unchanged", `Main Hall, Room 2`, `Main Hall, Room 2`},
		{"surrounding whitespace", "  Hackathon  ", "Hackathon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestHTML_KeepsSafeFormatting(t *testing.T) {
	out := HTML(`<p>Bring a <strong>laptop</strong></p><script>steal()</script><a href="#" onclick="x()">rules</a>`)
	assert.Contains(t, out, "<strong>laptop</strong>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}
