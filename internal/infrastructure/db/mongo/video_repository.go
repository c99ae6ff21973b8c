package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

const videosCollection = "videos"

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(videosCollection)}
}

type videoDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	VideoFileURL    string             `bson:"video_file_url"`
	ThumbnailURL    string             `bson:"thumbnail_url"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	DurationSeconds float64            `bson:"duration_seconds"`
	ViewCount       int64              `bson:"view_count"`
	IsPublished     bool               `bson:"is_published"`
	OwnerID         string             `bson:"owner_id"`
	CreatedAt       int64              `bson:"created_at"`
	UpdatedAt       int64              `bson:"updated_at"`
}

func (d videoDoc) toDomain() *domain.Video {
	return &domain.Video{
		ID:              d.ID.Hex(),
		VideoFileURL:    d.VideoFileURL,
		ThumbnailURL:    d.ThumbnailURL,
		Title:           d.Title,
		Description:     d.Description,
		DurationSeconds: d.DurationSeconds,
		ViewCount:       d.ViewCount,
		IsPublished:     d.IsPublished,
		OwnerID:         d.OwnerID,
		CreatedAt:       unixToTime(d.CreatedAt),
		UpdatedAt:       unixToTime(d.UpdatedAt),
	}
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := videoDoc{
		VideoFileURL:    v.VideoFileURL,
		ThumbnailURL:    v.ThumbnailURL,
		Title:           v.Title,
		Description:     v.Description,
		DurationSeconds: v.DurationSeconds,
		ViewCount:       v.ViewCount,
		IsPublished:     v.IsPublished,
		OwnerID:         v.OwnerID,
		CreatedAt:       v.CreatedAt.Unix(),
		UpdatedAt:       v.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	created := *v
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of videos matching filter plus the total count,
// newest first.
func (r *VideoRepository) List(ctx context.Context, filter ports.ListVideosFilter) ([]*domain.Video, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.PublishedOnly {
		query["is_published"] = true
	}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"title": regex},
			{"description": regex},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer cur.Close(ctx)

	var videos []*domain.Video
	for cur.Next(ctx) {
		var doc videoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode video: %w", err)
		}
		videos = append(videos, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}

	return videos, total, nil
}

// IncrementViews atomically adds delta to the view counter.
func (r *VideoRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"view_count": delta}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"is_published": published, "updated_at": time.Now().Unix()},
	})
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing owner scans and listing order.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_published", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
