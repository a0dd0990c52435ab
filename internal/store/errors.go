package store

import "errors"

var (
	ErrBuildingSQLQuery       = errors.New("error building sql query")
	ErrExecutingQuery         = errors.New("error executing query")
	ErrPreparingStatement     = errors.New("error preparing statement")
	ErrExecutingStatement     = errors.New("error executing prepared statement")
	ErrScanningRow            = errors.New("error scanning row")
	ErrScanningRows           = errors.New("error scanning rows")
	ErrBeginningTransaction   = errors.New("error beginning transaction")
	ErrCommitingTransaction   = errors.New("error commiting transaction")
	ErrStoryNotFound          = errors.New("story not found")
	ErrStoryAlreadyExists     = errors.New("story already exists")
	ErrContentVersionNotFound = errors.New("content version not found")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrMarshallingStory       = errors.New("error marshalling story pages")
	ErrUnmarshallingStory     = errors.New("error unmarshalling story pages")
)
