package sheets

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrRateLimited indicates the store kept answering with quota errors
	// after all retry attempts.
	ErrRateLimited = errors.New("sheets: rate limit retries exhausted")
	// ErrSheetNotFound indicates a worksheet is missing from the spreadsheet.
	ErrSheetNotFound = errors.New("sheets: sheet not found")
)

// transient reports whether err is a rate-limit or quota failure worth
// retrying. Classification is structural, on the API error code and reason,
// never on message text.
func transient(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	if apiErr.Code == http.StatusForbidden {
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded":
				return true
			}
		}
	}
	return false
}
