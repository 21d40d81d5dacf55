package validators

import "errors"

var (
	ErrTitleEmpty          = errors.New("no title provided")
	ErrTitleTooLong        = errors.New("title must be at most 150 characters long")
	ErrDescriptionTooShort = errors.New("description must be at least 5 characters long")
	ErrPriceNotPositive    = errors.New("price must be a positive number")
	ErrPriceRangeInverted  = errors.New("min_price can't be bigger than max_price")
)

func ProductValidator(title, description string, price float64) error {
	if title == "" {
		return ErrTitleEmpty
	}

	if len(title) > 150 {
		return ErrTitleTooLong
	}

	if len(description) < 5 {
		return ErrDescriptionTooShort
	}

	if price <= 0 {
		return ErrPriceNotPositive
	}

	return nil
}

// PriceRangeValidator checks the optional min/max filters of the
// product listing endpoint
func PriceRangeValidator(min, max *float64) error {
	if min != nil && *min < 0 {
		return ErrPriceNotPositive
	}

	if max != nil && *max < 0 {
		return ErrPriceNotPositive
	}

	if min != nil && max != nil && *min > *max {
		return ErrPriceRangeInverted
	}

	return nil
}
