package book

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "first last", input: "William Gibson", expected: "Gibson, William"},
		{name: "already inverted", input: "Gibson, William", expected: "Gibson, William"},
		{name: "single name", input: "Beyoncé", expected: "Beyoncé"},
		{name: "middle name", input: "Ursula Kroeber Le Guin", expected: "Guin, Ursula Kroeber Le"},
		{name: "initials", input: "J.D. Salinger", expected: "Salinger, J.D."},
		{name: "surrounding whitespace", input: "  Neal Stephenson ", expected: "Stephenson, Neal"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAuthor(tt.input))
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	assert.Equal(t, "Gibson, William; Sterling, Bruce", FormatAuthors([]string{"William Gibson", "Bruce Sterling"}))
	assert.Equal(t, "Gibson, William", FormatAuthors([]string{"William Gibson", " "}))
	assert.Equal(t, "", FormatAuthors(nil))
}

func TestResultUsable(t *testing.T) {
	var nilResult *Result
	assert.False(t, nilResult.Usable())
	assert.False(t, (&Result{Title: "Neuromancer"}).Usable())
	assert.False(t, (&Result{Title: "  ", Authors: []string{"William Gibson"}}).Usable())
	assert.False(t, (&Result{Authors: []string{"William Gibson"}}).Usable())
	assert.True(t, (&Result{Title: "Neuromancer", Authors: []string{"William Gibson"}}).Usable())
}
