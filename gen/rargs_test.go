package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rglue/rglue/attr"
)

func TestNumericDefaults(t *testing.T) {
	cases := []struct {
		typ, cpp, want string
	}{
		{"int", "5", "5L"},
		{"double", "5", "5"},
		{"float", "5", "5"},
		{"double", "2.5", "2.5"},
		{"int", "5L", "5L"},   // already explicit-integer, pass through
		{"int", "5 L", "5 L"}, // whitespace before the suffix tokenizes the same
		{"int", "1e3", "1e3L"},
		{"double", "-0.5", "-0.5"},
		{"size_t", "10", "10L"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cppArgToRArg(c.typ, c.cpp), "translate(%q, %q)", c.typ, c.cpp)
	}
}

func TestLiteralDefaults(t *testing.T) {
	assert.Equal(t, "TRUE", cppArgToRArg("bool", "true"))
	assert.Equal(t, "FALSE", cppArgToRArg("bool", "false"))
	assert.Equal(t, "NULL", cppArgToRArg("SEXP", "R_NilValue"))
	assert.Equal(t, "NA", cppArgToRArg("int", "NA_INTEGER"))
	assert.Equal(t, "NA", cppArgToRArg("double", "NA_REAL"))
	assert.Equal(t, "NA", cppArgToRArg("std::string", "NA_STRING"))
	assert.Equal(t, "NA", cppArgToRArg("bool", "NA_LOGICAL"))
}

func TestQuotedDefaults(t *testing.T) {
	assert.Equal(t, `"hello"`, cppArgToRArg("std::string", `"hello"`))
	assert.Equal(t, "'a'", cppArgToRArg("char", "'a'"))
}

func TestCreateDefaults(t *testing.T) {
	assert.Equal(t, "character(1)", cppArgToRArg("CharacterVector", "CharacterVector::create(1)"))
	assert.Equal(t, "integer(0)", cppArgToRArg("IntegerVector", "IntegerVector::create(0)"))
	assert.Equal(t, "numeric(1, 2)", cppArgToRArg("NumericVector", "NumericVector::create(1, 2)"))

	// library-namespace prefix is stripped before matching
	assert.Equal(t, "numeric(1)", cppArgToRArg("NumericVector", "Rcpp::NumericVector::create(1)"))

	// unknown vector types don't translate
	assert.Equal(t, "", cppArgToRArg("List", "List::create(1)"))
}

func TestMatrixDefaults(t *testing.T) {
	assert.Equal(t, "matrix(3, 3)", cppArgToRArg("NumericMatrix", "NumericMatrix(3, 3)"))
	assert.Equal(t, "matrix(2, 2)", cppArgToRArg("IntegerMatrix", "IntegerMatrix(2, 2)"))
}

func TestUntranslatableDefault(t *testing.T) {
	// translation is best effort: an arbitrary expression yields an empty
	// result, never an error
	assert.Equal(t, "", cppArgToRArg("int", "foo(x)"))
	assert.Equal(t, "", cppArgToRArg("int", "std::max(1, 2)"))
}

func TestGenerateRArgList(t *testing.T) {
	fn := attr.Function{
		Type: attr.Type{Name: "double"},
		Name: "scale",
		Arguments: []attr.Argument{
			{Name: "x", Type: attr.Type{Name: "NumericVector"}},
			{Name: "by", Type: attr.Type{Name: "int"}, DefaultValue: "2"},
			{Name: "na_rm", Type: attr.Type{Name: "bool"}, DefaultValue: "false"},
		},
	}
	assert.Equal(t, "x, by = 2L, na_rm = FALSE", generateRArgList(fn))
}

func TestGenerateRArgListDropsUnparsableDefault(t *testing.T) {
	fn := attr.Function{
		Type: attr.Type{Name: "int"},
		Name: "weird",
		Arguments: []attr.Argument{
			{Name: "x", Type: attr.Type{Name: "int"}, DefaultValue: "foo(x)"},
			{Name: "y", Type: attr.Type{Name: "int"}, DefaultValue: "3"},
		},
	}
	// the unparsable default is dropped (parameter becomes required),
	// generation continues
	assert.Equal(t, "x, y = 3L", generateRArgList(fn))
}
