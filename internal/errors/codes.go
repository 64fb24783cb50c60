package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps codes to messages.
//
// Every failure surfaced by this service falls into one of four kinds:
// conflict, not found, invalid input, or store unavailable.

const (
	// ==================== auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthForbidden    = "AUTH_FORBIDDEN" // authenticated but not allowed

	// ==================== validation (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID       = "VALIDATION_INVALID_ID"
	ValidationInvalidCategory = "VALIDATION_INVALID_CATEGORY" // pattern selector outside the catalog
	ValidationInvalidSort     = "VALIDATION_INVALID_SORT"

	// ==================== plates (PLATE_) ====================
	PlateNotFound   = "PLATE_NOT_FOUND"
	PlateDuplicate  = "PLATE_DUPLICATE"  // identifying facet tuple already listed
	PlatePinLimit   = "PLATE_PIN_LIMIT"  // system-wide pin cap reached
	PlateNotSelling = "PLATE_NOT_SELLING"

	// ==================== social (SOCIAL_) ====================
	SocialAlreadyExists = "SOCIAL_ALREADY_EXISTS" // relation already recorded
	SocialNotFound      = "SOCIAL_NOT_FOUND"

	// ==================== store / transfer ====================
	StoreNotFound        = "STORE_NOT_FOUND"
	TransferNotFound     = "TRANSFER_NOT_FOUND"
	TransferAlreadyDone  = "TRANSFER_ALREADY_DONE"
	RatingAlreadyExists  = "RATING_ALREADY_EXISTS"
	HashtagAlreadyExists = "HASHTAG_ALREADY_EXISTS"
	HashtagNotFound      = "HASHTAG_NOT_FOUND"

	// ==================== resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // relational store unavailable
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
