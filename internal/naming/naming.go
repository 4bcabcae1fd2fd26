package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

func Slug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonSlugRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}

// Extension returns the file extension written for an output format.
func Extension(format string) string {
	switch format {
	case "json":
		return ".json"
	case "svg":
		return ".svg"
	default:
		return ".txt"
	}
}

// UniqueNamer hands out slugs, suffixing repeats with -2, -3 and so on.
// It is not safe for concurrent use.
type UniqueNamer struct {
	counts map[string]int
}

func NewUniqueNamer() *UniqueNamer {
	return &UniqueNamer{counts: map[string]int{}}
}

func (u *UniqueNamer) Next(base string) string {
	base = Slug(base)
	u.counts[base]++
	if u.counts[base] == 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, u.counts[base])
}

// OutputNames maps input paths to distinct output file names for format.
// "-" reads stdin and is named after it.
func OutputNames(inputs []string, format string) []string {
	namer := NewUniqueNamer()
	ext := Extension(format)
	out := make([]string, len(inputs))
	for i, in := range inputs {
		base := "stdin"
		if in != "-" {
			base = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		}
		out[i] = namer.Next(base) + ext
	}
	return out
}
