package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"octocat", "octocat"},
		{"  octocat \n", "octocat"},
		{"@octocat", "octocat"},
		{"https://github.com/octocat", "octocat"},
		{"github.com/octocat/", "octocat"},
		{"https://github.com/octocat/Hello-World", "octocat"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeUsername(tt.input))
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"octocat", "a", "mojombo", "some-user", "User123"}
	invalid := []string{"", "-octocat", "octocat-", "octo--cat", "octo cat", "octo/cat",
		"a123456789012345678901234567890123456789"}

	for _, s := range valid {
		assert.True(t, IsValidUsername(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidUsername(s), s)
	}
}
