package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSchema(t *testing.T) {
	s := BuildSchema([]string{"FormID", " First Name ", "first name", "", "Pick-up Window"})

	i, ok := s.Col("formid")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	// Duplicate headers resolve to the first occurrence.
	i, ok = s.Col("First Name")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	// Alias order decides which column wins.
	i, ok = s.Col("Pickup Window", "Pick-up Window", "Preferred Pickup Window")
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = s.Col("Additional Services")
	assert.False(t, ok)
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for idx, want := range cases {
		assert.Equal(t, want, ColumnLetter(idx), "index %d", idx)
	}
}
