/*
Package errs provides the application error type and error code constants.

errorMap holds the message and HTTP status template for every code.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for each application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Post, Comment, and Message Business Logic Errors
	ErrPostNotFound:        {Code: ErrPostNotFound, Message: "Post not found.", Status: http.StatusNotFound},
	ErrNoPostsFound:        {Code: ErrNoPostsFound, Message: "No posts found.", Status: http.StatusNotFound},
	ErrImageRequired:       {Code: ErrImageRequired, Message: "At least one image is required.", Status: http.StatusBadRequest},
	ErrTooManyImages:       {Code: ErrTooManyImages, Message: "A post can contain at most %d images.", Status: http.StatusBadRequest},
	ErrNotPostAuthor:       {Code: ErrNotPostAuthor, Message: "Unauthorized access!", Status: http.StatusForbidden},
	ErrCommentTextRequired: {Code: ErrCommentTextRequired, Message: "Text is required.", Status: http.StatusBadRequest},
	ErrNoCommentsFound:     {Code: ErrNoCommentsFound, Message: "No comments found for this post.", Status: http.StatusNotFound},
	ErrMessageTextRequired: {Code: ErrMessageTextRequired, Message: "Message content is required.", Status: http.StatusBadRequest},

	// 3xxx: User, Session, and Security Errors
	ErrMissingFields:      {Code: ErrMissingFields, Message: "Enter all fields!", Status: http.StatusUnauthorized},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "User already exists!", Status: http.StatusUnauthorized},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "User not found.", Status: http.StatusNotFound},
	ErrSelfFollow:         {Code: ErrSelfFollow, Message: "You cannot follow/unfollow yourself.", Status: http.StatusBadRequest},
	ErrNoSuggestedUsers:   {Code: ErrNoSuggestedUsers, Message: "Currently do not have any users.", Status: http.StatusBadRequest},

	// 4xxx: Upload and Storage Errors
	ErrFileTooLarge:          {Code: ErrFileTooLarge, Message: "File is too large.", Status: http.StatusBadRequest},
	ErrUnsupportedImageType:  {Code: ErrUnsupportedImageType, Message: "Unsupported image format.", Status: http.StatusBadRequest},
	ErrImageProcessingFailed: {Code: ErrImageProcessingFailed, Message: "Image could not be processed.", Status: http.StatusUnprocessableEntity},
	ErrFileStorageFailed:     {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Server error.", Status: http.StatusInternalServerError},
}
