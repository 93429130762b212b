package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKey checks if the error is a MongoDB unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNotFound checks if the error means no document matched the query.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
