package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		date   string
		others bool
		want   bool
	}{
		{"both required", "Amount", "Date", false, true},
		{"both required plus optional", "Amount", "Date", true, true},
		{"missing date", "Amount", "", true, false},
		{"missing amount", "", "Date", true, false},
		{"nothing", "", "", false, false},
		{"only optional", "", "", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapping()
			m.Set(FieldAmount, tt.amount)
			m.Set(FieldDate, tt.date)
			if tt.others {
				m.Set(FieldDescription, "Memo")
				m.Set(FieldAccount, "Account")
				m.Set(FieldCategory, "Category")
				m.Set(FieldType, "Type")
			}
			assert.Equal(t, tt.want, m.IsValid())
			assert.Equal(t, tt.want, m.Check() == nil)
		})
	}
}

func TestMapping_ZeroValue(t *testing.T) {
	var m Mapping
	assert.False(t, m.IsValid())
	assert.Equal(t, "", m.Get(FieldAmount))

	m.Set(FieldAmount, "Amount")
	assert.Equal(t, "Amount", m.Get(FieldAmount))
}

func TestMapping_Check(t *testing.T) {
	m := NewMapping()
	m.Set(FieldDate, "Date")
	err := m.Check()
	require.ErrorIs(t, err, ErrMappingIncomplete)
	assert.Contains(t, err.Error(), "amount")
	assert.Equal(t, []Field{FieldAmount}, m.Missing())
}

func TestMapping_SetEmptyClears(t *testing.T) {
	m := NewMapping()
	m.Set(FieldCategory, "Category")
	m.Set(FieldCategory, "")
	assert.False(t, m.IsMapped(FieldCategory))

	m.Set(FieldType, "Type")
	m.Clear(FieldType)
	assert.False(t, m.IsMapped(FieldType))
}

func TestMapping_Clone(t *testing.T) {
	m := NewMapping()
	m.Set(FieldAmount, "Amount")
	c := m.Clone()
	c.Set(FieldAmount, "Other")
	assert.Equal(t, "Amount", m.Get(FieldAmount))
	assert.False(t, m.Equal(c))
}

func TestMapping_ApplyOverrides(t *testing.T) {
	headers := []string{"Posted", "Debit", "Memo", "Notes"}
	m := AutoDetect(headers)
	require.Equal(t, "Memo", m.Get(FieldDescription))

	err := m.ApplyOverrides(headers, []string{"description=Notes", "Type="})
	require.NoError(t, err)
	assert.Equal(t, "Notes", m.Get(FieldDescription))
	assert.False(t, m.IsMapped(FieldType))
	assert.Equal(t, "Debit", m.Get(FieldAmount))
}

func TestMapping_ApplyOverridesErrors(t *testing.T) {
	headers := []string{"Date", "Amount"}
	tests := []struct {
		override string
		contains string
	}{
		{"amount", "expected field=header"},
		{"balance=Amount", "unknown field"},
		{"amount=Nope", "no column named"},
	}
	for _, tt := range tests {
		m := NewMapping()
		err := m.ApplyOverrides(headers, []string{tt.override})
		require.Error(t, err, tt.override)
		assert.Contains(t, err.Error(), tt.contains)
	}
}

func TestMapping_ApplyOverridesAllOrNothing(t *testing.T) {
	headers := []string{"Date", "Amount", "Memo"}
	m := AutoDetect(headers)
	before := m.Clone()

	err := m.ApplyOverrides(headers, []string{"description=", "amount=Nope"})
	require.Error(t, err)
	assert.True(t, m.Equal(before))
	assert.Equal(t, "Memo", m.Get(FieldDescription))
}

func TestMapping_String(t *testing.T) {
	m := NewMapping()
	m.Set(FieldAmount, "Amt")
	assert.Equal(t, "amount=Amt date= description= account= category= type=", m.String())
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Amount ")
	require.NoError(t, err)
	assert.Equal(t, FieldAmount, f)

	_, err = ParseField("balance")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFieldSpecs(t *testing.T) {
	specs := FieldSpecs()
	require.Len(t, specs, len(Fields))
	for i, spec := range specs {
		assert.Equal(t, Fields[i], spec.Field)
		assert.NotEmpty(t, spec.Label)
		assert.Equal(t, spec.Field.Required(), spec.Required)
	}
	assert.True(t, specs[0].Required)
	assert.True(t, specs[1].Required)
	assert.False(t, specs[2].Required)

	// Callers get a copy.
	specs[0].Label = "changed"
	assert.Equal(t, "Amount", FieldSpecs()[0].Label)
}
