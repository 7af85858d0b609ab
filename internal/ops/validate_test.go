package ops

import (
	"errors"
	"testing"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr string
	}{
		{"1965", 1965, ""},
		{" 1937 ", 1937, ""},
		{"-500", -500, ""},
		{"", 0, "invalid year: must not be empty"},
		{"   ", 0, "invalid year: must not be empty"},
		{"nineteen", 0, `invalid year: "nineteen" is not a number`},
		{"19.5", 0, `invalid year: "19.5" is not a number`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var valErr *cli.ValidationError
				assert.True(t, errors.As(err, &valErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateBook(t *testing.T) {
	assert.NoError(t, ValidateBook("Dune", "Herbert"))

	err := ValidateBook("  ", "Herbert")
	require.Error(t, err)
	assert.Equal(t, "invalid title: must not be empty", err.Error())

	err = ValidateBook("Dune", "")
	require.Error(t, err)
	assert.Equal(t, "invalid author: must not be empty", err.Error())
}

func TestCheck(t *testing.T) {
	kv, err := storage.NewMemoryKV()
	require.NoError(t, err)
	require.NoError(t, kv.Set(model.StorageKey, []byte(`[
{"id":5,"title":"A","author":"x","year":1,"isComplete":false},
{"id":5,"title":"B","author":"x","year":1,"isComplete":false},
{"id":0,"title":"C","author":"x","year":1,"isComplete":false},
{"id":7,"title":" ","author":"x","year":1,"isComplete":false}]`)))

	bs, err := OpenBookStore(kv)
	require.NoError(t, err)

	issues := bs.Check()
	require.Len(t, issues, 3)
	assert.Equal(t, IssueDuplicateID, issues[0].Type)
	assert.Equal(t, int64(5), issues[0].BookID)
	assert.Equal(t, IssueInvalidID, issues[1].Type)
	assert.Equal(t, IssueMissingTitle, issues[2].Type)
	assert.Contains(t, issues[0].Error(), "duplicate_id")
}

func TestRepair(t *testing.T) {
	t.Run("reassigns duplicate and invalid IDs and saves", func(t *testing.T) {
		kv, err := storage.NewMemoryKV()
		require.NoError(t, err)
		require.NoError(t, kv.Set(model.StorageKey, []byte(`[
{"id":5,"title":"A","author":"x","year":1,"isComplete":false},
{"id":5,"title":"B","author":"x","year":1,"isComplete":true},
{"id":-1,"title":"C","author":"x","year":1,"isComplete":false}]`)))

		bs, err := OpenBookStore(kv, WithClock(steppingClock(1)))
		require.NoError(t, err)

		fixes, err := bs.Repair()
		require.NoError(t, err)
		require.Len(t, fixes, 2)
		assert.Equal(t, IssueDuplicateID, fixes[0].Type)
		assert.Equal(t, IssueInvalidID, fixes[1].Type)
		assert.Empty(t, bs.Check())

		books := bs.Books()
		assert.Equal(t, int64(5), books[0].ID)
		assert.Equal(t, []string{"A", "B", "C"}, titles(books))
		assert.Equal(t, books, storedBooks(t, kv))
	})

	t.Run("clean list is left alone", func(t *testing.T) {
		bs, _ := setupTestStore(t)
		_, err := bs.Add("A", "x", 1, false)
		require.NoError(t, err)

		fixes, err := bs.Repair()
		require.NoError(t, err)
		assert.Empty(t, fixes)
	})
}

func TestLookupError(t *testing.T) {
	err := LookupError(42)
	var nf *cli.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "book 42 not found", err.Error())
}
