package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGetStoriesQuery(t *testing.T) {
	tests := []struct {
		name       string
		storyIDs   []string
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:     "no ids selects whole catalog",
			storyIDs: nil,
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "select")
				require.Contains(t, q, "from stories")
				require.NotContains(t, q, "where")
				require.Contains(t, q, "order by story_id")
				require.Empty(t, args)
			},
		},
		{
			name:     "single id",
			storyIDs: []string{"forest"},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, strings.ToLower(query), "where")
				require.Contains(t, query, "$1")
				require.Len(t, args, 1)
				require.Equal(t, "forest", args[0])
			},
		},
		{
			name:     "multiple ids",
			storyIDs: []string{"forest", "ocean", "desert"},
			checkQuery: func(t *testing.T, query string, args []any) {
				// squirrel generates IN ($1,$2,$3) for a slice.
				require.Contains(t, query, "$1")
				require.Contains(t, query, "$2")
				require.Contains(t, query, "$3")

				require.Len(t, args, 3)
				require.Equal(t, "forest", args[0])
				require.Equal(t, "ocean", args[1])
				require.Equal(t, "desert", args[2])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildGetStoriesQuery(tt.storyIDs...)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func TestBuildInsertStoryQuery(t *testing.T) {
	query, args, err := buildInsertStoryQuery("forest", "The Forest", "adventure", "a story", 1, "images/forest/cover.png", true, "chk", []byte(`[]`))
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into stories")
	assert.Contains(t, q, "returning created_at, updated_at")
	require.Len(t, args, 9)
	assert.Equal(t, "forest", args[0])
}

func TestBuildUpdateStoryQuery(t *testing.T) {
	query, args, err := buildUpdateStoryQuery("forest", "The Forest", "adventure", "a story", 2, "images/forest/cover.png", true, "chk", []byte(`[]`))
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "update stories")
	assert.Contains(t, q, "updated_at = now()")
	assert.Contains(t, q, "where story_id =")

	// story_id is the trailing WHERE argument.
	require.NotEmpty(t, args)
	assert.Equal(t, "forest", args[len(args)-1])
}

func TestBuildUpsertContentVersionQuery(t *testing.T) {
	query, args, err := buildUpsertContentVersionQuery("current", 5, 3, 1700000000000, []byte(`{}`))
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into content_version")
	assert.Contains(t, q, "on conflict (id) do update")
	require.Len(t, args, 5)
	assert.Equal(t, "current", args[0])
}
