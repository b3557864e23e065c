package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// Estimates and acts live in this one collection; is_act is part of every
// query filter so the two surfaces never bleed into each other.
const estimatesCollection = "estimates"

type EstimateRepository struct {
	coll *mongo.Collection
}

func NewEstimateRepository(db *mongo.Database) *EstimateRepository {
	return &EstimateRepository{coll: db.Collection(estimatesCollection)}
}

type mongoEstimate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   string             `bson:"client_id"`
	CreatedBy  string             `bson:"created_by"`
	DesignerID string             `bson:"designer_id,omitempty"`
	Title      string             `bson:"title"`
	Status     string             `bson:"status"`
	IsAct      bool               `bson:"is_act"`
	Visible    bool               `bson:"visible_to_client"`
	Items      []domain.WorkItem  `bson:"items"`
	Total      float64            `bson:"total"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (me mongoEstimate) toDomain() *domain.Estimate {
	return &domain.Estimate{
		ID:         me.ID.Hex(),
		ClientID:   me.ClientID,
		CreatedBy:  me.CreatedBy,
		DesignerID: me.DesignerID,
		Title:      me.Title,
		Status:     me.Status,
		IsAct:      me.IsAct,
		Visible:    me.Visible,
		Items:      me.Items,
		Total:      me.Total,
		CreatedAt:  me.CreatedAt,
		UpdatedAt:  me.UpdatedAt,
	}
}

func fromDomainEstimate(e *domain.Estimate) mongoEstimate {
	return mongoEstimate{
		ClientID:   e.ClientID,
		CreatedBy:  e.CreatedBy,
		DesignerID: e.DesignerID,
		Title:      e.Title,
		Status:     e.Status,
		IsAct:      e.IsAct,
		Visible:    e.Visible,
		Items:      e.Items,
		Total:      e.Total,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r *EstimateRepository) Create(ctx context.Context, estimate *domain.Estimate) (*domain.Estimate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromDomainEstimate(estimate))
	if err != nil {
		return nil, fmt.Errorf("insert estimate: %w", err)
	}

	created := *estimate
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EstimateRepository) FindByID(ctx context.Context, id string, isAct bool) (*domain.Estimate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEstimateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEstimate
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_act": isAct}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEstimateNotFound
		}
		return nil, fmt.Errorf("find estimate: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EstimateRepository) List(ctx context.Context, filter ports.EstimateFilter) ([]domain.Estimate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_act": filter.IsAct}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}
	if filter.DesignerID != "" {
		query["designer_id"] = filter.DesignerID
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.VisibleOnly {
		query["visible_to_client"] = true
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Estimate
	for cursor.Next(ctx) {
		var me mongoEstimate
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode estimate: %w", err)
		}
		out = append(out, *me.toDomain())
	}
	return out, cursor.Err()
}

func (r *EstimateRepository) Update(ctx context.Context, estimate *domain.Estimate) error {
	oid, err := primitive.ObjectIDFromHex(estimate.ID)
	if err != nil {
		return domain.ErrEstimateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       estimate.Title,
		"status":      estimate.Status,
		"designer_id": estimate.DesignerID,
		"items":       estimate.Items,
		"total":       estimate.Total,
		"updated_at":  estimate.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEstimateNotFound
	}
	return nil
}

func (r *EstimateRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEstimateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEstimateNotFound
	}
	return nil
}

func (r *EstimateRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEstimateNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"visible_to_client": visible, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("set estimate visibility: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEstimateNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the scoped listings.
func (r *EstimateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_act", Value: 1}, {Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "is_act", Value: 1}, {Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_act", Value: 1}, {Key: "designer_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
