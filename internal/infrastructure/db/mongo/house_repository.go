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

const collectionHouses = "houses"

type HouseRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewHouseRepository(db *mongo.Database) *HouseRepository {
	return &HouseRepository{db: db, col: db.Collection(collectionHouses)}
}

func (r *HouseRepository) Create(ctx context.Context, h *domain.House) (*domain.House, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if h.ID == "" {
		h.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, h); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrHouseExists
		}
		return nil, fmt.Errorf("insert house: %w", err)
	}
	return h, nil
}

func (r *HouseRepository) FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.House, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.House
	err := r.col.FindOne(ctx, applyScope(bson.M{"_id": id}, scope)).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHouseNotFound
		}
		return nil, fmt.Errorf("find house: %w", err)
	}
	return &h, nil
}

func (r *HouseRepository) FindByOwnerAndNumber(ctx context.Context, ownerID, houseNumber, excludingID string) (*domain.House, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "house_number": houseNumber}
	if excludingID != "" {
		filter["_id"] = bson.M{"$ne": excludingID}
	}

	var h domain.House
	err := r.col.FindOne(ctx, filter).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHouseNotFound
		}
		return nil, fmt.Errorf("find house by number: %w", err)
	}
	return &h, nil
}

func (r *HouseRepository) List(ctx context.Context, f ports.ListHousesFilter) ([]*domain.House, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := applyScope(bson.M{}, f.Scope)
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.HouseType != "" {
		filter["house_type"] = f.HouseType
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count houses: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list houses: %w", err)
	}
	defer cur.Close(ctx)

	var houses []*domain.House
	for cur.Next(ctx) {
		var h domain.House
		if err := cur.Decode(&h); err != nil {
			return nil, 0, fmt.Errorf("decode house: %w", err)
		}
		houses = append(houses, &h)
	}
	return houses, total, cur.Err()
}

func (r *HouseRepository) Update(ctx context.Context, h *domain.House) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrHouseExists
		}
		return fmt.Errorf("update house: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHouseNotFound
	}
	return nil
}

// DeleteCascade removes the house and its occupants and assignments in one
// transaction, so a partially deleted house can never be observed.
func (r *HouseRepository) DeleteCascade(ctx context.Context, id string) error {
	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.db.Collection(collectionOccupants).DeleteMany(sc, bson.M{"house_id": id}); err != nil {
			return fmt.Errorf("cascade occupants: %w", err)
		}
		if _, err := r.db.Collection(collectionAssignments).DeleteMany(sc, bson.M{"house_id": id}); err != nil {
			return fmt.Errorf("cascade assignments: %w", err)
		}
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete house: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrHouseNotFound
		}
		return nil
	})
}

// CountOccupants returns the occupant count per house id using a single
// aggregation.
func (r *HouseRepository) CountOccupants(ctx context.Context, houseIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(houseIDs))
	if len(houseIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"house_id": bson.M{"$in": houseIDs}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$house_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.db.Collection(collectionOccupants).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count occupants: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			HouseID string `bson:"_id"`
			Count   int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode occupant count: %w", err)
		}
		out[row.HouseID] = row.Count
	}
	return out, cur.Err()
}

// EnsureIndexes creates the (owner, house_number) uniqueness backstop.
func (r *HouseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "house_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("owner_house_number_unique"),
		},
		{Keys: bson.D{{Key: "house_type", Value: 1}}},
	})
	return err
}
