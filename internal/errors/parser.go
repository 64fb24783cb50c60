package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries an error code plus a message safe to show callers.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates store-layer errors into user-facing codes. Raw query
// text and driver detail never reach the caller; unrecognized failures fall
// back to the internal-error catch-all.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "an unexpected error occurred",
		}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL unique violation (23505); sqlite phrases it as "UNIQUE
	// constraint failed".
	if strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}

	// Foreign key violation (23503): the referenced row does not exist.
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "referenced data does not exist",
		}
	}

	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "a required field is missing",
		}
	}

	// Connection-level failures: the store is unavailable.
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "broken pipe") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "the data store is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "an unexpected error occurred, please try again later",
	}
}

func parseDuplicateKeyError(errStr, context string) ErrorInfo {
	if strings.Contains(errStr, "unique_text") || strings.Contains(errStr, "plates") && strings.Contains(context, "plate") {
		return ErrorInfo{
			Code:    PlateDuplicate,
			Message: "a listing with the same plate facets already exists",
		}
	}
	if strings.Contains(errStr, "liked") || strings.Contains(errStr, "saved") {
		return ErrorInfo{
			Code:    SocialAlreadyExists,
			Message: "this reaction was already recorded",
		}
	}
	if strings.Contains(errStr, "rating") {
		return ErrorInfo{
			Code:    RatingAlreadyExists,
			Message: "you already rated this store",
		}
	}
	if strings.Contains(errStr, "hashtag") {
		return ErrorInfo{
			Code:    HashtagAlreadyExists,
			Message: "this hashtag is already attached",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "this data already exists",
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "plate"):
		return PlateNotFound
	case strings.Contains(contextLower, "store"):
		return StoreNotFound
	case strings.Contains(contextLower, "transfer"):
		return TransferNotFound
	case strings.Contains(contextLower, "hashtag"):
		return HashtagNotFound
	default:
		return ResourceNotFound
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "plate"):
		return "listing not found"
	case strings.Contains(contextLower, "store"):
		return "store not found"
	case strings.Contains(contextLower, "transfer"):
		return "transfer not found"
	case strings.Contains(contextLower, "hashtag"):
		return "hashtag not found"
	default:
		return "requested data not found"
	}
}
