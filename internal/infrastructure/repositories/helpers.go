package repositories

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// objectID parses a hex id, mapping malformed input to the domain error so
// handlers can answer 400 instead of 500.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// objectIDs parses a list of hex ids, skipping malformed entries.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}
