package validators

import "errors"

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrCommentEmpty     = errors.New("no comment provided")
	ErrCommentTooLong   = errors.New("comment is too long")
)

func ReviewValidator(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}

	if comment == "" {
		return ErrCommentEmpty
	}

	if len(comment) > 2000 {
		return ErrCommentTooLong
	}

	return nil
}
