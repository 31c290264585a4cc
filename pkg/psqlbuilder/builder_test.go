package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("appointments").
		Where(squirrel.Eq{"status": "scheduled"}).
		Where(squirrel.Eq{"date": "2026-10-19"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM appointments WHERE status = $1 AND date = $2", query)
	assert.Equal(t, []interface{}{"scheduled", "2026-10-19"}, args)
}

func TestBuilder_Update(t *testing.T) {
	query, args, err := Update("appointments").
		Set("status", "completed").
		Where(squirrel.Eq{"id": int64(7)}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE appointments SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
