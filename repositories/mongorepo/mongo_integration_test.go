package mongorepo

import (
	"context"
	"testing"
	"time"

	"ormakal.in/models"
	"ormakal.in/pkg/content"
	"ormakal.in/repositories"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepositorySuite struct {
	suite.Suite
	container   *tcMongo.MongoDBContainer
	client      *mongo.Client
	db          *mongo.Database
	obituaries  repositories.IObituaryRepository
	condolences repositories.ICondolenceRepository
}

func TestMongoRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mongo integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(MongoRepositorySuite))
}

func (s *MongoRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcMongo.Run(ctx, "mongo:7")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	s.Require().NoError(err)
	s.client = client
	s.db = client.Database("ormakal_test")

	s.Require().NoError(EnsureIndexes(ctx, s.db))

	s.obituaries = NewObituaryRepo(s.db)
	s.condolences = NewCondolenceRepo(s.db)
}

func (s *MongoRepositorySuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		s.NoError(s.client.Disconnect(ctx))
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(ctx))
	}
}

func (s *MongoRepositorySuite) SetupTest() {
	ctx := context.Background()
	_, err := s.db.Collection(obituaryCollection).DeleteMany(ctx, bson.M{})
	s.Require().NoError(err)
	_, err = s.db.Collection(condolenceCollection).DeleteMany(ctx, bson.M{})
	s.Require().NoError(err)
}

func (s *MongoRepositorySuite) newObituary(name string) *models.Obituary {
	o := &models.Obituary{
		Name:          content.NewText(name, ""),
		DateOfBirth:   time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		DateOfPassing: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Language:      content.English,
	}
	s.Require().NoError(s.obituaries.Create(context.Background(), o))
	return o
}

func (s *MongoRepositorySuite) TestActivateKeepsSingleActive() {
	ctx := context.Background()
	first := s.newObituary("First")
	second := s.newObituary("Second")

	s.Require().NoError(s.obituaries.Activate(ctx, first.ID))
	s.Require().NoError(s.obituaries.Activate(ctx, second.ID))

	active, err := s.obituaries.FindActive(ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)

	count, err := s.db.Collection(obituaryCollection).CountDocuments(ctx, bson.M{"isActive": true})
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	s.ErrorIs(s.obituaries.Activate(ctx, models.NewID()), repositories.ErrNotFound)
}

func (s *MongoRepositorySuite) TestApprovedCondolencesNewestFirst() {
	ctx := context.Background()
	obituary := s.newObituary("Memorial")
	other := s.newObituary("Other")
	t1 := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	add := func(obituaryID, name string, at time.Time, approved bool) *models.Condolence {
		c := &models.Condolence{
			BaseModel:  models.BaseModel{CreatedAt: at},
			ObituaryID: obituaryID,
			Name:       name,
			Email:      name + "@example.com",
			Message:    "With sympathy",
			IsApproved: approved,
		}
		s.Require().NoError(s.condolences.Create(ctx, c))
		return c
	}

	c1 := add(obituary.ID, "t1", t1, true)
	c3 := add(obituary.ID, "t3", t1.Add(2*time.Hour), true)
	c2 := add(obituary.ID, "t2", t1.Add(time.Hour), true)
	add(obituary.ID, "hidden", t1.Add(3*time.Hour), false)
	add(other.ID, "elsewhere", t1.Add(4*time.Hour), true)

	got, err := s.condolences.FindApprovedByObituaryID(ctx, obituary.ID)
	s.Require().NoError(err)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	s.Equal([]string{c3.ID, c2.ID, c1.ID}, ids)
}

func (s *MongoRepositorySuite) TestApproveIsIdempotent() {
	ctx := context.Background()
	obituary := s.newObituary("Memorial")
	c := &models.Condolence{ObituaryID: obituary.ID, Name: "Jane", Email: "jane@example.com", Message: "With sympathy"}
	s.Require().NoError(s.condolences.Create(ctx, c))

	s.Require().NoError(s.condolences.Approve(ctx, c.ID))
	s.Require().NoError(s.condolences.Approve(ctx, c.ID))

	stored, err := s.condolences.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.True(stored.IsApproved)

	s.ErrorIs(s.condolences.Approve(ctx, models.NewID()), repositories.ErrNotFound)
	s.ErrorIs(s.condolences.Approve(ctx, "not-a-uuid"), repositories.ErrNotFound)
}

func (s *MongoRepositorySuite) TestReadsObjectIDDocuments() {
	ctx := context.Background()
	obituaryID := primitive.NewObjectID()
	older, newer, pending := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	t1 := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	_, err := s.db.Collection(obituaryCollection).InsertOne(ctx, bson.M{
		"_id":           obituaryID,
		"name":          "Athira Gowtham",
		"dateOfBirth":   time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		"dateOfPassing": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"isActive":      true,
		"createdAt":     t1,
		"updatedAt":     t1,
	})
	s.Require().NoError(err)
	_, err = s.db.Collection(condolenceCollection).InsertMany(ctx, []any{
		bson.M{"_id": older, "obituaryId": obituaryID, "name": "Older", "email": "o@example.com", "message": "With sympathy", "isApproved": true, "createdAt": t1},
		bson.M{"_id": newer, "obituaryId": obituaryID, "name": "Newer", "email": "n@example.com", "message": "With sympathy", "isApproved": true, "createdAt": t1.Add(time.Hour)},
		bson.M{"_id": pending, "obituaryId": obituaryID, "name": "Pending", "email": "p@example.com", "message": "With sympathy", "isApproved": false, "createdAt": t1.Add(2 * time.Hour)},
	})
	s.Require().NoError(err)

	active, err := s.obituaries.FindActive(ctx)
	s.Require().NoError(err)
	s.Equal(obituaryID.Hex(), active.ID)
	s.Equal("Athira Gowtham", active.Name.English)

	got, err := s.condolences.FindApprovedByObituaryID(ctx, active.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(newer.Hex(), got[0].ID)
	s.Equal(older.Hex(), got[1].ID)

	s.Require().NoError(s.condolences.Approve(ctx, pending.Hex()))
	got, err = s.condolences.FindApprovedByObituaryID(ctx, active.ID)
	s.Require().NoError(err)
	s.Len(got, 3)

	s.Require().NoError(s.obituaries.Activate(ctx, active.ID))
	again, err := s.obituaries.FindActive(ctx)
	s.Require().NoError(err)
	s.Equal(obituaryID.Hex(), again.ID)
}
