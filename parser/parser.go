// Package parser scans annotated C++ source files for [[rglue::...]]
// attribute comments and builds the attr symbol model from them.
//
// This is deliberately not a C++ parser. Only attribute-tagged declarations
// matter: the scanner walks the file line by line, and when it sees an
// export attribute it reads exactly one function declaration (up to the
// opening brace or semicolon) with a small tokenizer. Anything the tokenizer
// cannot make sense of is skipped with a warning rather than failing the run.
package parser

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/rglue/rglue/attr"
	"github.com/rglue/rglue/errors"
	"github.com/rglue/rglue/logger"
)

var (
	attributeRe = regexp.MustCompile(`^\s*//\s*\[\[rglue::(\w+)(?:\((.*)\))?\]\]\s*$`)
	roxygenRe   = regexp.MustCompile(`^\s*//'(.*)$`)
	identRe     = regexp.MustCompile(`[A-Za-z_]\w*$`)
)

// ParseFile reads one source file and returns its attribute collection.
// A file with no rglue attributes yields an empty (but valid) record.
func ParseFile(path string) (*attr.SourceFileAttributes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapFileIO(err, path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapFileIO(err, path)
	}

	return parseLines(path, lines), nil
}

// Parse scans in-memory source text. Used by tests and by callers that
// already hold file content.
func Parse(sourceFile, content string) *attr.SourceFileAttributes {
	return parseLines(sourceFile, strings.Split(content, "\n"))
}

func parseLines(sourceFile string, lines []string) *attr.SourceFileAttributes {
	s := &attr.SourceFileAttributes{SourceFile: sourceFile}

	var roxygen []string
	declaredInterfaces := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := roxygenRe.FindStringSubmatch(line); m != nil {
			// Re-prefix for R documentation tooling
			roxygen = append(roxygen, "#'"+m[1])
			continue
		}

		m := attributeRe.FindStringSubmatch(line)
		if m == nil {
			if strings.TrimSpace(line) != "" {
				// Intervening code detaches any collected doc lines
				roxygen = nil
			}
			continue
		}

		kind := m[1]
		params := splitParams(m[2])

		switch kind {
		case attr.AttributeInterfaces:
			declaredInterfaces = true
			for _, p := range params {
				switch attr.Interface(p) {
				case attr.InterfaceR:
					s.Interfaces = append(s.Interfaces, attr.InterfaceR)
				case attr.InterfaceCpp:
					s.Interfaces = append(s.Interfaces, attr.InterfaceCpp)
				default:
					logger.Warnf("unknown interface '%s' in %s (expected r or cpp)", p, sourceFile)
				}
			}
			s.Attributes = append(s.Attributes, attr.Attribute{
				Name:   kind,
				Params: params,
			})

		case attr.AttributeExport:
			fn, consumed, ok := parseDeclaration(lines[i+1:])
			i += consumed
			if !ok {
				logger.Warnf("no function declaration found after [[rglue::export]] in %s", sourceFile)
			}
			s.Attributes = append(s.Attributes, attr.Attribute{
				Name:     kind,
				Params:   params,
				Function: fn,
				Roxygen:  roxygen,
			})

		default:
			logger.Debugw("ignoring unrecognized attribute",
				logger.FieldFile, sourceFile,
				"attribute", kind)
			s.Attributes = append(s.Attributes, attr.Attribute{
				Name:   kind,
				Params: params,
			})
		}

		roxygen = nil
	}

	if !declaredInterfaces {
		// Files that declare nothing export to R only
		s.Interfaces = []attr.Interface{attr.InterfaceR}
	}

	return s
}

// splitParams splits an attribute parameter list on top-level commas and
// strips surrounding whitespace and quotes from each entry.
func splitParams(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []string
	for _, p := range splitTopLevel(raw, ',') {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"'`)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}

// parseDeclaration reads one function declaration from the lines following
// an export attribute. It accumulates lines until the declaration's
// parameter list closes and a body brace or semicolon appears. Returns the
// parsed function, the number of lines consumed, and whether parsing
// succeeded.
func parseDeclaration(lines []string) (attr.Function, int, bool) {
	var decl strings.Builder
	consumed := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && decl.Len() == 0 {
			consumed++
			continue // leading blank lines between attribute and declaration
		}
		if decl.Len() == 0 && (strings.HasPrefix(trimmed, "//") || attributeRe.MatchString(line)) {
			// Another comment or attribute before any declaration text:
			// this export attribute has nothing to tag.
			return attr.Function{}, consumed, false
		}
		consumed++
		decl.WriteString(" ")
		decl.WriteString(trimmed)

		if idx := strings.IndexAny(decl.String(), "{;"); idx >= 0 {
			fn, ok := parseFunction(decl.String()[:idx])
			return fn, consumed, ok
		}
	}

	return attr.Function{}, consumed, false
}

// parseFunction tokenizes a single declaration of the form
// "retType name(type1 a1 = d1, type2 a2)".
func parseFunction(decl string) (attr.Function, bool) {
	decl = collapseSpaces(decl)

	open := strings.IndexByte(decl, '(')
	end := matchParen(decl, open)
	if open < 0 || end < 0 {
		return attr.Function{}, false
	}

	retAndName := strings.TrimSpace(decl[:open])
	name := identRe.FindString(retAndName)
	retType := strings.TrimSpace(strings.TrimSuffix(retAndName, name))
	if name == "" || retType == "" {
		return attr.Function{}, false
	}

	fn := attr.Function{
		Type: attr.Type{Name: retType},
		Name: name,
	}

	argsText := strings.TrimSpace(decl[open+1 : end])
	if argsText == "" {
		return fn, true
	}

	for _, rawArg := range splitTopLevel(argsText, ',') {
		arg, ok := parseArgument(rawArg)
		if !ok {
			return attr.Function{}, false
		}
		fn.Arguments = append(fn.Arguments, arg)
	}

	return fn, true
}

// parseArgument tokenizes "type name" or "type name = default".
func parseArgument(raw string) (attr.Argument, bool) {
	raw = strings.TrimSpace(raw)

	var defaultValue string
	if eq := indexTopLevel(raw, '='); eq >= 0 {
		defaultValue = strings.TrimSpace(raw[eq+1:])
		raw = strings.TrimSpace(raw[:eq])
	}

	name := identRe.FindString(raw)
	typ := strings.TrimSpace(strings.TrimSuffix(raw, name))
	if name == "" || typ == "" {
		return attr.Argument{}, false
	}

	return attr.Argument{
		Name:         name,
		Type:         attr.Type{Name: typ},
		DefaultValue: defaultValue,
	}, true
}

// matchParen returns the index of the ')' matching the '(' at open, or -1.
func matchParen(s string, open int) int {
	if open < 0 {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep occurrences outside parentheses, angle
// brackets, and string/char literals. Template arguments and nested call
// expressions in defaults stay intact.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	start := 0
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexTopLevel returns the index of the first sep outside brackets and
// quotes, or -1. Used to find the '=' that introduces a default value
// without tripping on '=' inside a default expression.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
