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

// ObituaryMongoRepo implements repositories.IObituaryRepository on MongoDB.
type ObituaryMongoRepo struct {
	db         *mongo.Database
	collection string
}

// NewObituaryRepo creates an obituary store over db.
func NewObituaryRepo(db *mongo.Database) repositories.IObituaryRepository {
	return &ObituaryMongoRepo{db: db, collection: obituaryCollection}
}

func (r *ObituaryMongoRepo) coll() *mongo.Collection {
	return r.db.Collection(r.collection)
}

func (r *ObituaryMongoRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Obituary, error) {
	var doc obituaryDocument
	err := r.coll().FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		configslog.Log.Error("ObituaryMongoRepo: find failed", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *ObituaryMongoRepo) FindActive(ctx context.Context) (*models.Obituary, error) {
	return r.findOne(ctx, bson.M{"isActive": true}, options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (r *ObituaryMongoRepo) FindByID(ctx context.Context, id string) (*models.Obituary, error) {
	if id == "" {
		return nil, repositories.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": idMatch(id)})
}

func (r *ObituaryMongoRepo) FindAll(ctx context.Context) ([]models.Obituary, error) {
	cursor, err := r.coll().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		configslog.Log.Error("ObituaryMongoRepo.FindAll failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []obituaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	obituaries := make([]models.Obituary, 0, len(docs))
	for _, d := range docs {
		obituaries = append(obituaries, *d.toModel())
	}
	return obituaries, nil
}

func (r *ObituaryMongoRepo) Create(ctx context.Context, obituary *models.Obituary) error {
	if obituary == nil {
		return errors.New("obituary to create cannot be nil")
	}
	if obituary.ID == "" {
		obituary.ID = models.NewID()
	}
	now := time.Now().UTC()
	if obituary.CreatedAt.IsZero() {
		obituary.CreatedAt = now
	}
	obituary.UpdatedAt = now

	_, err := r.coll().InsertOne(ctx, newObituaryDocument(obituary))
	return err
}

// Activate deactivates the others before activating id, so a concurrent reader
// sees either zero or one active obituary, never two.
func (r *ObituaryMongoRepo) Activate(ctx context.Context, id string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	now := time.Now().UTC()

	_, err := r.coll().UpdateMany(ctx,
		bson.M{"_id": idExclude(id), "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}},
	)
	if err != nil {
		configslog.Log.Error("ObituaryMongoRepo.Activate: deactivate others failed", zap.String("id", id), zap.Error(err))
		return err
	}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": idMatch(id)}, bson.M{"$set": bson.M{"isActive": true, "updatedAt": now}})
	if err != nil {
		configslog.Log.Error("ObituaryMongoRepo.Activate failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

var _ repositories.IObituaryRepository = (*ObituaryMongoRepo)(nil)
