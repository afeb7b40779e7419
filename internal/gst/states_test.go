package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invonest/internal/gst"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Maharashtra", "maharashtra"},
		{" mh ", "maharashtra"},
		{"27", "maharashtra"},
		{"7", "delhi"},
		{"New Delhi", "delhi"},
		{"Uttaranchal", "uttarakhand"},
		{"28", "andhra pradesh"},
		{"Daman & Diu", "dadra and nagar haveli and daman and diu"},
		{"  Some   Place ", "some place"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, gst.NormalizeState(tc.in))
		})
	}
}

func TestLookupState(t *testing.T) {
	st, ok := gst.LookupState("ka")
	require.True(t, ok)
	assert.Equal(t, "29", st.Code)
	assert.Equal(t, "Karnataka", st.Name)

	_, ok = gst.LookupState("Narnia")
	assert.False(t, ok)
}

func TestStateFromGSTIN(t *testing.T) {
	st, ok := gst.StateFromGSTIN("27AAPFU0939F1ZV")
	require.True(t, ok)
	assert.Equal(t, "Maharashtra", st.Name)

	_, ok = gst.StateFromGSTIN("X")
	assert.False(t, ok)
	_, ok = gst.StateFromGSTIN("AB1234")
	assert.False(t, ok)
	_, ok = gst.StateFromGSTIN("99AAPFU0939F1ZV")
	assert.False(t, ok)
}

func TestStates_ReturnsCopy(t *testing.T) {
	all := gst.States()
	require.NotEmpty(t, all)
	all[0].Name = "changed"
	assert.Equal(t, "Jammu and Kashmir", gst.States()[0].Name)
}
