package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var storyColumns = []string{
	"story_id",
	"title",
	"category",
	"description",
	"version",
	"cover_image",
	"available",
	"checksum",
	"pages",
	"created_at",
	"updated_at",
}

// buildGetStoriesQuery selects either the whole catalog (no IDs given)
// or only the stories whose IDs are listed.
func buildGetStoriesQuery(storyIDs ...string) (string, []any, error) {
	builder := psql.
		Select(storyColumns...).
		From("stories").
		OrderBy("story_id")

	if len(storyIDs) > 0 {
		builder = builder.Where(sq.Eq{"story_id": storyIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildGetStoriesByCategoryQuery(category string) (string, []any, error) {
	query, args, err := psql.
		Select(storyColumns...).
		From("stories").
		Where(sq.Eq{"category": category}).
		OrderBy("story_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertStoryQuery(storyID, title, category, description string, version int, coverImage string, available bool, checksum string, pagesJSON []byte) (string, []any, error) {
	query, args, err := psql.
		Insert("stories").
		Columns("story_id", "title", "category", "description", "version", "cover_image", "available", "checksum", "pages").
		Values(storyID, title, category, description, version, coverImage, available, checksum, pagesJSON).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildUpdateStoryQuery(storyID, title, category, description string, version int, coverImage string, available bool, checksum string, pagesJSON []byte) (string, []any, error) {
	query, args, err := psql.
		Update("stories").
		Set("title", title).
		Set("category", category).
		Set("description", description).
		Set("version", version).
		Set("cover_image", coverImage).
		Set("available", available).
		Set("checksum", checksum).
		Set("pages", pagesJSON).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"story_id": storyID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteStoryQuery(storyID string) (string, []any, error) {
	query, args, err := psql.
		Delete("stories").
		Where(sq.Eq{"story_id": storyID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildGetContentVersionQuery(id string) (string, []any, error) {
	query, args, err := psql.
		Select("id", "version", "total_stories", "last_updated", "checksums").
		From("content_version").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertContentVersionQuery writes the singleton counter row.
// ON CONFLICT keeps the write idempotent for the fixed row ID.
func buildUpsertContentVersionQuery(id string, version int, totalStories int, lastUpdated int64, checksumsJSON []byte) (string, []any, error) {
	query, args, err := psql.
		Insert("content_version").
		Columns("id", "version", "total_stories", "last_updated", "checksums").
		Values(id, version, totalStories, lastUpdated, checksumsJSON).
		Suffix("ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version, total_stories = EXCLUDED.total_stories, last_updated = EXCLUDED.last_updated, checksums = EXCLUDED.checksums").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
