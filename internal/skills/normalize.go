// Package skills normalizes skill names so variants such as "golang" and "Go" compare equal.
package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// aliases maps lower-cased skill variants to canonical names
var aliases = map[string]string{
	"golang":      "Go",
	"go lang":     "Go",
	"javascript":  "JavaScript",
	"js":          "JavaScript",
	"typescript":  "TypeScript",
	"ts":          "TypeScript",
	"k8s":         "Kubernetes",
	"kubernetes":  "Kubernetes",
	"react.js":    "React",
	"reactjs":     "React",
	"vue.js":      "Vue",
	"vuejs":       "Vue",
	"node.js":     "Node.js",
	"nodejs":      "Node.js",
	"node":        "Node.js",
	"postgres":    "PostgreSQL",
	"postgresql":  "PostgreSQL",
	"mysql":       "MySQL",
	"graphql":     "GraphQL",
	"aws":         "AWS",
	"gcp":         "GCP",
	"ci/cd":       "CI/CD",
	"spring boot": "Spring Boot",
	"springboot":  "Spring Boot",
}

// Normalize returns the canonical form of a skill name. Known variants map to their
// canonical name; a single all-lowercase word is capitalized. Acronyms and mixed case
// are kept as written, with runs of whitespace collapsed.
func Normalize(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	if normalized == "" {
		return ""
	}

	if canonical, ok := aliases[strings.ToLower(normalized)]; ok {
		return canonical
	}

	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") {
		r, size := utf8.DecodeRuneInString(normalized)
		return string(unicode.ToUpper(r)) + normalized[size:]
	}
	return normalized
}

// Key is the comparison key of a skill name.
func Key(name string) string {
	return strings.ToLower(Normalize(name))
}

// Equal reports whether a and b name the same skill.
func Equal(a, b string) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}

// Contains reports whether list holds name after normalization.
func Contains(list []string, name string) bool {
	for _, s := range list {
		if Equal(s, name) {
			return true
		}
	}
	return false
}
