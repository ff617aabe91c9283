package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

const collectionOccupants = "occupants"

type OccupantRepository struct {
	col *mongo.Collection
}

func NewOccupantRepository(db *mongo.Database) *OccupantRepository {
	return &OccupantRepository{col: db.Collection(collectionOccupants)}
}

func (r *OccupantRepository) Create(ctx context.Context, o *domain.Occupant) (*domain.Occupant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if o.ID == "" {
		o.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUnit
		}
		return nil, fmt.Errorf("insert occupant: %w", err)
	}
	return o, nil
}

func (r *OccupantRepository) FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.Occupant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Occupant
	err := r.col.FindOne(ctx, applyScope(bson.M{"_id": id}, scope)).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOccupantNotFound
		}
		return nil, fmt.Errorf("find occupant: %w", err)
	}
	return &o, nil
}

func (r *OccupantRepository) FindByApartment(ctx context.Context, houseID, apartmentNumber, excludingID string) (*domain.Occupant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"house_id": houseID, "apartment_number": apartmentNumber}
	if excludingID != "" {
		filter["_id"] = bson.M{"$ne": excludingID}
	}

	var o domain.Occupant
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOccupantNotFound
		}
		return nil, fmt.Errorf("find occupant by apartment: %w", err)
	}
	return &o, nil
}

func (r *OccupantRepository) List(ctx context.Context, f ports.ListOccupantsFilter) ([]*domain.Occupant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := applyScope(bson.M{}, f.Scope)
	if f.HouseID != "" {
		filter["house_id"] = f.HouseID
	}
	if f.ChiefsOnly {
		filter["is_chief_tenant"] = true
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count occupants: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list occupants: %w", err)
	}
	defer cur.Close(ctx)

	var occupants []*domain.Occupant
	for cur.Next(ctx) {
		var o domain.Occupant
		if err := cur.Decode(&o); err != nil {
			return nil, 0, fmt.Errorf("decode occupant: %w", err)
		}
		occupants = append(occupants, &o)
	}
	return occupants, total, cur.Err()
}

func (r *OccupantRepository) Update(ctx context.Context, o *domain.Occupant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUnit
		}
		return fmt.Errorf("update occupant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOccupantNotFound
	}
	return nil
}

func (r *OccupantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete occupant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOccupantNotFound
	}
	return nil
}

// EnsureIndexes creates the (house, apartment_number) uniqueness backstop.
func (r *OccupantRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "house_id", Value: 1}, {Key: "apartment_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("house_apartment_unique"),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_chief_tenant", Value: 1}}},
	})
	return err
}
