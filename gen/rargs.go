package gen

import (
	"regexp"
	"strings"

	"github.com/rglue/rglue/attr"
	"github.com/rglue/rglue/logger"
)

// Translation of C++ default-argument expressions into R literal syntax.
//
// This is a best-effort heuristic over literal spellings, not an expression
// evaluator. Each helper returns "" when it cannot translate; cppArgToRArg
// tries them in a fixed priority order and the R generator downgrades a
// total failure to a warning (the parameter simply loses its default).

var numericPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// isQuoted reports whether the expression is already a quoted string or
// character literal, which passes through to R unchanged.
func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' || first == '\'') && last == first
}

// cppLiteralArgToRArg maps keyword literals: booleans, the null pointer
// sentinel, and the per-type NA spellings (all of which collapse to R's
// single NA).
func cppLiteralArgToRArg(cppArg string) string {
	switch cppArg {
	case "true":
		return "TRUE"
	case "false":
		return "FALSE"
	case "R_NilValue":
		return "NULL"
	case "NA_STRING", "NA_INTEGER", "NA_LOGICAL", "NA_REAL":
		return "NA"
	}
	return ""
}

// cppCreateArgToRArg rewrites "Type::create(args...)" construction
// expressions for the fixed set of vector types that have R constructor
// equivalents, stripping a leading Rcpp:: namespace qualifier first.
func cppCreateArgToRArg(cppArg string) string {
	const create = "::create"
	loc := strings.Index(cppArg, create)
	if loc < 0 || loc+len(create) >= len(cppArg) {
		return ""
	}

	typ := cppArg[:loc]
	typ = strings.TrimPrefix(typ, "Rcpp::")

	args := cppArg[loc+len(create):]
	switch typ {
	case "CharacterVector":
		return "character" + args
	case "IntegerVector":
		return "integer" + args
	case "NumericVector":
		return "numeric" + args
	}
	return ""
}

// cppMatrixArgToRArg rewrites "...Matrix(args...)" constructions as R's
// matrix(args...).
func cppMatrixArgToRArg(cppArg string) string {
	const matrix = "Matrix"
	loc := strings.Index(cppArg, matrix)
	if loc < 0 || loc+len(matrix) >= len(cppArg) {
		return ""
	}
	return "matrix" + cppArg[loc+len(matrix):]
}

// cppNumericArgToRArg handles bare numeric literals. A value already
// carrying an explicit-integer L suffix (with or without whitespace before
// the L, matching the original tool's stream tokenizing) passes through
// unchanged. Otherwise a literal with no decimal point whose declared type
// is not floating point gets the L suffix appended; everything else passes
// through as-is.
func cppNumericArgToRArg(typ, cppArg string) string {
	trimmed := strings.TrimLeft(cppArg, " \t")
	num := numericPrefixRe.FindString(trimmed)
	if num == "" {
		return ""
	}

	rest := trimmed[len(num):]
	if rest != "" {
		fields := strings.Fields(rest)
		if len(fields) == 1 && fields[0] == "L" {
			return cppArg
		}
		return ""
	}

	if !strings.Contains(cppArg, ".") && typ != "double" && typ != "float" {
		return cppArg + "L"
	}
	return cppArg
}

// cppArgToRArg converts a C++ default-argument expression to an R literal.
// Returns "" when no rule applies.
func cppArgToRArg(typ, cppArg string) string {
	if isQuoted(cppArg) {
		return cppArg
	}
	if rArg := cppLiteralArgToRArg(cppArg); rArg != "" {
		return rArg
	}
	if rArg := cppCreateArgToRArg(cppArg); rArg != "" {
		return rArg
	}
	if rArg := cppMatrixArgToRArg(cppArg); rArg != "" {
		return rArg
	}
	if rArg := cppNumericArgToRArg(typ, cppArg); rArg != "" {
		return rArg
	}
	return ""
}

// generateRArgList renders the formal parameter list for the R wrapper of
// the given function, translating default values where possible. An
// untranslatable default is logged and dropped, which makes that parameter
// required on the R side.
func generateRArgList(function attr.Function) string {
	var sb strings.Builder
	for i, argument := range function.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(argument.Name)
		if argument.DefaultValue == "" {
			continue
		}
		rArg := cppArgToRArg(argument.Type.Name, argument.DefaultValue)
		if rArg != "" {
			sb.WriteString(" = ")
			sb.WriteString(rArg)
		} else {
			logger.Warnf("unable to parse C++ default value '%s' for argument %s of function %s",
				argument.DefaultValue, argument.Name, function.Name)
		}
	}
	return sb.String()
}
