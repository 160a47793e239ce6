package repository

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"ann":     "ann",
		"100%":    `100\%`,
		"o_neil":  `o\_neil`,
		`back\sl`: `back\\sl`,
		`%_\`:     `\%\_\\`,
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), in)
	}
}

func TestSearchStaffQuery(t *testing.T) {
	query, args, err := searchStaffQuery("50%_off", 10)
	require.NoError(t, err)

	assert.Contains(t, query, `WHERE (name ILIKE $1 ESCAPE '\' OR email ILIKE $2 ESCAPE '\')`)
	assert.Contains(t, query, "ORDER BY name ASC LIMIT 10")
	require.Len(t, args, 2)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.Equal(t, args[0], args[1])
}

func TestSearchStaffQuery_NoLimit(t *testing.T) {
	query, _, err := searchStaffQuery("ann", 0)
	require.NoError(t, err)
	assert.NotContains(t, query, "LIMIT")
}

func TestStaffByIDsQuery(t *testing.T) {
	query, args, err := staffByIDsQuery([]string{"s1", "s2"})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM staff_members WHERE id = ANY($1)")
	require.Len(t, args, 1)
	assert.Equal(t, pq.Array([]string{"s1", "s2"}), args[0])
}
