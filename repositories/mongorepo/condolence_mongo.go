package mongorepo

import (
	"context"
	"errors"
	"time"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"
	"ormakal.in/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CondolenceMongoRepo implements repositories.ICondolenceRepository on MongoDB.
type CondolenceMongoRepo struct {
	db         *mongo.Database
	collection string
}

// NewCondolenceRepo creates a condolence store over db.
func NewCondolenceRepo(db *mongo.Database) repositories.ICondolenceRepository {
	return &CondolenceMongoRepo{db: db, collection: condolenceCollection}
}

func (r *CondolenceMongoRepo) coll() *mongo.Collection {
	return r.db.Collection(r.collection)
}

func (r *CondolenceMongoRepo) Create(ctx context.Context, condolence *models.Condolence) error {
	if condolence == nil {
		return errors.New("condolence to create cannot be nil")
	}
	if condolence.ObituaryID == "" {
		return errors.New("condolence must reference an obituary")
	}
	if condolence.ID == "" {
		condolence.ID = models.NewID()
	}
	now := time.Now().UTC()
	if condolence.CreatedAt.IsZero() {
		condolence.CreatedAt = now
	}
	condolence.UpdatedAt = now

	_, err := r.coll().InsertOne(ctx, newCondolenceDocument(condolence))
	return err
}

func (r *CondolenceMongoRepo) FindByID(ctx context.Context, id string) (*models.Condolence, error) {
	if id == "" {
		return nil, repositories.ErrNotFound
	}
	var doc condolenceDocument
	if err := r.coll().FindOne(ctx, bson.M{"_id": idMatch(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		configslog.Log.Error("CondolenceMongoRepo.FindByID failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	condolence := doc.toModel()
	return &condolence, nil
}

func (r *CondolenceMongoRepo) find(ctx context.Context, filter bson.M) ([]models.Condolence, error) {
	cursor, err := r.coll().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		configslog.Log.Error("CondolenceMongoRepo: find failed", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []condolenceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	condolences := make([]models.Condolence, 0, len(docs))
	for _, d := range docs {
		condolences = append(condolences, d.toModel())
	}
	return condolences, nil
}

func (r *CondolenceMongoRepo) FindApprovedByObituaryID(ctx context.Context, obituaryID string) ([]models.Condolence, error) {
	return r.find(ctx, bson.M{"obituaryId": idMatch(obituaryID), "isApproved": true})
}

func (r *CondolenceMongoRepo) FindAll(ctx context.Context) ([]models.Condolence, error) {
	return r.find(ctx, bson.M{})
}

func (r *CondolenceMongoRepo) Approve(ctx context.Context, id string) error {
	if id == "" {
		return repositories.ErrNotFound
	}
	res, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": idMatch(id)},
		bson.M{"$set": bson.M{"isApproved": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		configslog.Log.Error("CondolenceMongoRepo.Approve failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

var _ repositories.ICondolenceRepository = (*CondolenceMongoRepo)(nil)
