package service

import "errors"

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidParameter     = errors.New("invalid parameter")

	ErrSignedURLExpired = errors.New("signed url is expired")
	ErrSignedURLInvalid = errors.New("signed url is invalid")

	ErrValidationNoStoryID    = errors.New("no story id provided")
	ErrValidationNoCategory   = errors.New("no category provided")
	ErrValidationNoAssetPaths = errors.New("no asset paths provided")
)
