package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden/leave-engine/leave"
)

func TestMatchName_CaseAndTokenOrderInsensitive(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Mario Rossi", "mario rossi", true},
		{"Mario Rossi", "ROSSI Mario", true},
		{"Mario  Rossi", " rossi   MARIO ", true},
		{"Mario Rossi", "Mario Rossini", false},
		{"Mario Rossi", "Mario", false},
		{"", "", false}, // empty never matches, not even itself
		{"Anna Maria Bruni", "bruni anna maria", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, leave.MatchName(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestFindEmployee(t *testing.T) {
	roster := []leave.Employee{
		{Name: "Mario Rossi"},
		{Name: "Anna Bruni"},
	}

	emp, err := leave.FindEmployee(roster, "bruni ANNA")
	require.NoError(t, err)
	assert.Equal(t, "Anna Bruni", emp.Name)

	_, err = leave.FindEmployee(roster, "Carlo Dini")
	assert.ErrorIs(t, err, leave.ErrUnknownEmployee)

	_, err = leave.FindEmployee(roster, "   ")
	assert.ErrorIs(t, err, leave.ErrValidation)
}
