package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"golang to Go", "golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go  lang", "Go"},
		{"JS to JavaScript", "js", "JavaScript"},
		{"JS to JavaScript uppercase", "JS", "JavaScript"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"reactjs to React", "reactjs", "React"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"postgres to PostgreSQL", "Postgres", "PostgreSQL"},
		{"python to Python", "python", "Python"},
		{"acronym kept", "SQL", "SQL"},
		{"unknown acronym kept", "REST", "REST"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Multi-word stays as-is", "distributed systems", "distributed systems"},
		{"Mixed case single word", "JavaScript", "JavaScript"},
		{"non-ASCII first letter", "élixir", "Élixir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Go", "golang"))
	assert.True(t, Equal("K8S", "Kubernetes"))
	assert.True(t, Equal("sql", "SQL"))
	assert.False(t, Equal("Go", "Rust"))
	assert.False(t, Equal("", ""))
}

func TestContains(t *testing.T) {
	list := []string{"Go", "PostgreSQL"}
	assert.True(t, Contains(list, "golang"))
	assert.True(t, Contains(list, "postgres"))
	assert.False(t, Contains(list, "MySQL"))
}
