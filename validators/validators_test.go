package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, EmailValidator("alice@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator(strings.Repeat("a", 245)+"@example.com"), ErrEmailTooLong)
}

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, PasswordValidator("secret1"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("abc"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
}

func TestProductValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ProductValidator("phone", "a nice phone", 99.99))
	assert.ErrorIs(t, ProductValidator("", "a nice phone", 10), ErrTitleEmpty)
	assert.ErrorIs(t, ProductValidator(strings.Repeat("t", 151), "a nice phone", 10), ErrTitleTooLong)
	assert.ErrorIs(t, ProductValidator("phone", "shrt", 10), ErrDescriptionTooShort)
	assert.ErrorIs(t, ProductValidator("phone", "a nice phone", 0), ErrPriceNotPositive)
	assert.ErrorIs(t, ProductValidator("phone", "a nice phone", -5), ErrPriceNotPositive)
}

func TestPriceRangeValidator(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }

	assert.NoError(t, PriceRangeValidator(nil, nil))
	assert.NoError(t, PriceRangeValidator(f(10), f(20)))
	assert.NoError(t, PriceRangeValidator(f(10), nil))
	assert.ErrorIs(t, PriceRangeValidator(f(20), f(10)), ErrPriceRangeInverted)
	assert.ErrorIs(t, PriceRangeValidator(f(-1), nil), ErrPriceNotPositive)
	assert.ErrorIs(t, PriceRangeValidator(nil, f(-1)), ErrPriceNotPositive)
}

func TestReviewValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ReviewValidator(5, "great product"))
	assert.ErrorIs(t, ReviewValidator(0, "great product"), ErrRatingOutOfRange)
	assert.ErrorIs(t, ReviewValidator(6, "great product"), ErrRatingOutOfRange)
	assert.ErrorIs(t, ReviewValidator(3, ""), ErrCommentEmpty)
	assert.ErrorIs(t, ReviewValidator(3, strings.Repeat("c", 2001)), ErrCommentTooLong)
}
