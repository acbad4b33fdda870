package roster

import (
	"testing"

	. "rcsc-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	rahim := sampleRow(1, "rahim")
	rahim.FullName = "Rahim Uddin"
	rahim.Phone = "01715012619"
	rahim.TransactionID = "9HX2KPLQ"

	karim := sampleRow(2, "karim")
	karim.FullName = "Karim Ahmed"
	karim.Phone = "01911222333"
	karim.TransactionID = "AB77CDQQ"

	r := New()
	r.Load([]Registration{karim, rahim})

	tests := []struct {
		name     string
		term     string
		expected []int
	}{
		{
			name:     "empty term returns everything",
			term:     "",
			expected: []int{2, 1},
		},
		{
			name:     "name match is case-insensitive",
			term:     "RAHIM",
			expected: []int{1},
		},
		{
			name:     "partial name matches both",
			term:     "im",
			expected: []int{2, 1},
		},
		{
			name:     "phone substring",
			term:     "01715",
			expected: []int{1},
		},
		{
			name:     "transaction id lowercased by the user",
			term:     "9hx2",
			expected: []int{1},
		},
		{
			name:     "no match",
			term:     "zzz",
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []int{}
			for _, row := range r.Search(tt.term) {
				ids = append(ids, row.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearch_DoesNotMutateView(t *testing.T) {
	r := New()
	r.Load([]Registration{sampleRow(1, "rahim"), sampleRow(2, "karim")})

	_ = r.Search("rahim")

	assert.Equal(t, 2, r.Len())
}
