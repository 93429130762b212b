/*
Package errs provides the application error type and error code constants.

The codes identify specific business or system failures both in server logs
and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Post, Comment, and Message Business Logic Errors
const (
	// ErrPostNotFound indicates that the requested post does not exist.
	ErrPostNotFound = 2101

	// ErrNoPostsFound indicates that a post listing produced no results.
	ErrNoPostsFound = 2102

	// ErrImageRequired indicates a post submission without any image.
	ErrImageRequired = 2103

	// ErrTooManyImages indicates a post submission exceeding the image limit.
	ErrTooManyImages = 2104

	// ErrNotPostAuthor indicates an attempt to modify a post owned by another user.
	ErrNotPostAuthor = 2105

	// ErrCommentTextRequired indicates a comment submission without text.
	ErrCommentTextRequired = 2201

	// ErrNoCommentsFound indicates that a post has no comments to list.
	ErrNoCommentsFound = 2202

	// ErrMessageTextRequired indicates a chat message without content.
	ErrMessageTextRequired = 2301
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrMissingFields indicates that required registration or login fields are absent.
	ErrMissingFields = 3001

	// ErrUserAlreadyExists indicates that the email is already registered.
	ErrUserAlreadyExists = 3002

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 3003

	// ErrUnauthorized indicates a request without a valid session cookie.
	ErrUnauthorized = 3004

	// ErrUserNotFound indicates that the referenced account does not exist.
	ErrUserNotFound = 3005

	// ErrSelfFollow indicates an attempt to follow or unfollow oneself.
	ErrSelfFollow = 3006

	// ErrNoSuggestedUsers indicates that there are no other accounts to suggest.
	ErrNoSuggestedUsers = 3007
)

// 4xxx: Upload and Storage Errors
const (
	// ErrFileTooLarge indicates that an uploaded image exceeded the size limit.
	ErrFileTooLarge = 4001

	// ErrUnsupportedImageType indicates an upload that is not a supported image format.
	ErrUnsupportedImageType = 4002

	// ErrImageProcessingFailed indicates that decoding or re-encoding an image failed.
	ErrImageProcessingFailed = 4003

	// ErrFileStorageFailed indicates a failure writing to the object store.
	ErrFileStorageFailed = 4004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
