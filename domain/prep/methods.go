package prep

import (
	"strings"

	"prepkit/domain/core"
)

// NumericImputation selects how missing numeric cells are filled
type NumericImputation string

const (
	ImputeMean NumericImputation = "avg"
	ImputeZero NumericImputation = "zero"

	DefaultNumericImputation = ImputeMean
)

// CategoricalImputation selects how missing categorical cells are handled
type CategoricalImputation string

const (
	ImputeMode  CategoricalImputation = "mode"
	DropMissing CategoricalImputation = "drop"

	DefaultCategoricalImputation = ImputeMode
)

// EncodingMethod selects how categorical columns become numeric
type EncodingMethod string

const (
	EncodeLabel   EncodingMethod = "label"
	EncodeOrdinal EncodingMethod = "ordinal"
	EncodeOneHot  EncodingMethod = "one-hot"

	DefaultEncodingMethod = EncodeOneHot
)

func (m NumericImputation) String() string     { return string(m) }
func (m CategoricalImputation) String() string { return string(m) }
func (m EncodingMethod) String() string        { return string(m) }

// NumericImputations lists every numeric strategy in prompt order.
func NumericImputations() []NumericImputation {
	return []NumericImputation{ImputeMean, ImputeZero}
}

// CategoricalImputations lists every categorical strategy in prompt order.
func CategoricalImputations() []CategoricalImputation {
	return []CategoricalImputation{ImputeMode, DropMissing}
}

// EncodingMethods lists every encoding method in prompt order.
func EncodingMethods() []EncodingMethod {
	return []EncodingMethod{EncodeLabel, EncodeOrdinal, EncodeOneHot}
}

// Choices joins methods for help text, as in "avg/zero".
func Choices[M ~string](methods []M) string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return strings.Join(names, "/")
}

// ParseNumericImputation parses user input. Blank input resolves to the default;
// anything else unrecognized is an error.
func ParseNumericImputation(s string) (NumericImputation, error) {
	switch normalize(s) {
	case "":
		return DefaultNumericImputation, nil
	case "avg", "mean":
		return ImputeMean, nil
	case "zero", "0":
		return ImputeZero, nil
	}
	return "", core.NewInvalidMethodError("numeric imputation", s)
}

// ParseCategoricalImputation parses user input with the same default rule.
func ParseCategoricalImputation(s string) (CategoricalImputation, error) {
	switch normalize(s) {
	case "":
		return DefaultCategoricalImputation, nil
	case "mode":
		return ImputeMode, nil
	case "drop":
		return DropMissing, nil
	}
	return "", core.NewInvalidMethodError("categorical imputation", s)
}

// ParseEncodingMethod parses user input with the same default rule.
func ParseEncodingMethod(s string) (EncodingMethod, error) {
	switch normalize(s) {
	case "":
		return DefaultEncodingMethod, nil
	case "label":
		return EncodeLabel, nil
	case "ordinal":
		return EncodeOrdinal, nil
	case "one-hot", "onehot", "one_hot":
		return EncodeOneHot, nil
	}
	return "", core.NewInvalidMethodError("encoding", s)
}

// ResolveNumericImputation never fails: unrecognized input falls back to the
// default and fellBack is set so the caller can say so.
func ResolveNumericImputation(s string) (m NumericImputation, fellBack bool) {
	m, err := ParseNumericImputation(s)
	if err != nil {
		return DefaultNumericImputation, true
	}
	return m, false
}

// ResolveCategoricalImputation is the categorical counterpart of ResolveNumericImputation.
func ResolveCategoricalImputation(s string) (m CategoricalImputation, fellBack bool) {
	m, err := ParseCategoricalImputation(s)
	if err != nil {
		return DefaultCategoricalImputation, true
	}
	return m, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
