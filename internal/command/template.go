package command

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ErrNotFound reports that a template's binary is not on PATH.
var ErrNotFound = errors.New("command not found")

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Template is a parsed command line such as "ffmpeg -i {input} {output}".
type Template struct {
	raw  string
	args []string
}

// Parse splits raw into arguments using shell quoting rules. Nothing is
// expanded: no variables, globs or command substitution. The first argument
// is the binary and must not contain a placeholder.
func Parse(raw string) (Template, error) {
	args, err := shellwords.Parse(raw)
	if err != nil {
		return Template{}, fmt.Errorf("command template %q: %w", raw, err)
	}
	if len(args) == 0 {
		return Template{}, errors.New("command template is empty")
	}
	if placeholderPattern.MatchString(args[0]) {
		return Template{}, fmt.Errorf("command template %q: binary must not be a placeholder", raw)
	}
	return Template{raw: strings.TrimSpace(raw), args: args}, nil
}

// MustParse is Parse for templates known to be valid.
func MustParse(raw string) Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Binary returns the executable name.
func (t Template) Binary() string {
	if len(t.args) == 0 {
		return ""
	}
	return t.args[0]
}

func (t Template) String() string { return t.raw }

// Placeholders lists the distinct placeholder names the template references.
func (t Template) Placeholders() []string {
	var names []string
	seen := map[string]struct{}{}
	for _, arg := range t.args {
		for _, match := range placeholderPattern.FindAllStringSubmatch(arg, -1) {
			if _, ok := seen[match[1]]; ok {
				continue
			}
			seen[match[1]] = struct{}{}
			names = append(names, match[1])
		}
	}
	return names
}

// Expand substitutes vars into every argument. Unknown placeholders are an
// error so a typo never reaches the child process.
func (t Template) Expand(vars map[string]string) ([]string, error) {
	if len(t.args) == 0 {
		return nil, errors.New("command template is empty")
	}
	out := make([]string, len(t.args))
	for i, arg := range t.args {
		var missing string
		out[i] = placeholderPattern.ReplaceAllStringFunc(arg, func(token string) string {
			name := token[1 : len(token)-1]
			value, ok := vars[name]
			if !ok {
				missing = name
				return token
			}
			return value
		})
		if missing != "" {
			return nil, fmt.Errorf("command template %q: no value for {%s}", t.raw, missing)
		}
	}
	return out, nil
}

// Available reports whether the template's binary resolves on PATH.
func (t Template) Available() error {
	if _, err := exec.LookPath(t.Binary()); err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, t.Binary())
	}
	return nil
}
