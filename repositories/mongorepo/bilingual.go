package mongorepo

import (
	"errors"

	"ormakal.in/pkg/content"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// flexText stores a content.Text. Older documents hold a plain string, which
// decodes into the English slot.
type flexText content.Text

func (f *flexText) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = flexText{}
		return nil
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return errors.New("malformed bson string")
		}
		*f = flexText{English: s}
		return nil
	}

	var text content.Text
	if err := bson.UnmarshalValue(t, data, &text); err != nil {
		return err
	}
	*f = flexText(text)
	return nil
}

// flexList stores a content.List. A plain array decodes into the English slot.
type flexList content.List

func (f *flexList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = flexList{}
		return nil
	case bsontype.Array:
		var items []string
		if err := bson.UnmarshalValue(t, data, &items); err != nil {
			return err
		}
		*f = flexList{English: items}
		return nil
	}

	var list content.List
	if err := bson.UnmarshalValue(t, data, &list); err != nil {
		return err
	}
	*f = flexList(list)
	return nil
}
