package mongorepo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idMatch builds a filter value for an id column. Older documents keep ObjectIDs
// in _id and obituaryId; those decode to their hex form, so a hex id has to
// match both representations.
func idMatch(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{id, oid}}
	}
	return id
}

// idExclude is the negation of idMatch.
func idExclude(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$nin": bson.A{id, oid}}
	}
	return bson.M{"$ne": id}
}
