package importer

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is one of the fixed semantic targets a CSV column can be mapped to.
type Field string

const (
	FieldAmount      Field = "amount"
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAccount     Field = "account"
	FieldCategory    Field = "category"
	FieldType        Field = "type"
)

// Fields lists every Field in detection order.
var Fields = []Field{
	FieldAmount,
	FieldDate,
	FieldDescription,
	FieldAccount,
	FieldCategory,
	FieldType,
}

// FieldSpec is static metadata shown next to a mapping selector.
type FieldSpec struct {
	Field    Field
	Label    string
	Required bool
	Help     string
}

var fieldSpecs = []FieldSpec{
	{Field: FieldAmount, Label: "Amount", Required: true, Help: "Signed or unsigned transaction amount"},
	{Field: FieldDate, Label: "Date", Required: true, Help: "Posting or transaction date"},
	{Field: FieldDescription, Label: "Description", Help: "Payee, memo or merchant"},
	{Field: FieldAccount, Label: "Account"},
	{Field: FieldCategory, Label: "Category", Help: "Matched by name against your categories"},
	{Field: FieldType, Label: "Type", Help: "Text such as debit/credit or expense/income"},
}

// FieldSpecs returns metadata for every Field in detection order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// ParseField converts a case-insensitive name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Required reports whether a mapping must assign f before transforming.
func (f Field) Required() bool {
	return f == FieldAmount || f == FieldDate
}

// fieldPattern holds the header keywords for one Field.
type fieldPattern struct {
	field    Field
	patterns []*regexp.Regexp
}

func keywords(words ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(w))
	}
	return res
}

// headerPatterns is consulted in order; see AutoDetect.
var headerPatterns = []fieldPattern{
	{FieldAmount, keywords("amount", "amt", "value", "total", "paid", "debit", "credit")},
	{FieldDate, keywords("date", "posted", "time")},
	{FieldDescription, keywords("description", "desc", "memo", "payee", "merchant", "narrative", "narration", "details", "note")},
	{FieldAccount, keywords("account", "acct", "card", "bank", "source")},
	{FieldCategory, keywords("category", "categ", "group", "class")},
	{FieldType, keywords("type", "kind", "direction", "dr/cr")},
}

func (p fieldPattern) matches(header string) bool {
	for _, re := range p.patterns {
		if re.MatchString(header) {
			return true
		}
	}
	return false
}
