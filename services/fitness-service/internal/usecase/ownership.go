package usecase

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrInvalidID = errors.New("invalid id")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not authorized to access this resource")
)

func validateID(id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// checkOwner returns ErrForbidden unless owner is the user identified by userID.
func checkOwner(owner bson.ObjectID, userID string) error {
	if owner.Hex() != userID {
		return ErrForbidden
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
