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

const collectionAssignments = "chief_tenant_assignments"

type AssignmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{db: db, col: db.Collection(collectionAssignments)}
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.ChiefTenantAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.ChiefTenantAssignment
	err := r.col.FindOne(ctx, applyScope(bson.M{"_id": id}, scope)).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) FindActiveByHouse(ctx context.Context, houseID string, scope domain.Scope) (*domain.ChiefTenantAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := applyScope(bson.M{"house_id": houseID, "is_active": true}, scope)

	var a domain.ChiefTenantAssignment
	err := r.col.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find active assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) FindActiveByUser(ctx context.Context, userID, excludingID string) (*domain.ChiefTenantAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_active": true}
	if excludingID != "" {
		filter["_id"] = bson.M{"$ne": excludingID}
	}

	var a domain.ChiefTenantAssignment
	err := r.col.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find user assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) List(ctx context.Context, f ports.ListAssignmentsFilter) ([]*domain.ChiefTenantAssignment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := applyScope(bson.M{}, f.Scope)
	if f.HouseID != "" {
		filter["house_id"] = f.HouseID
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var assignments []*domain.ChiefTenantAssignment
	for cur.Next(ctx) {
		var a domain.ChiefTenantAssignment
		if err := cur.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, total, cur.Err()
}

// Save inserts or replaces without touching siblings. Used for inactive
// writes only; active writes go through SaveExclusive.
func (r *AssignmentRepository) Save(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SaveExclusive persists an active assignment and deactivates every other
// active assignment for the same house, in one transaction. The sweep runs
// first so the partial unique index on active house assignments cannot
// reject the subsequent write; a concurrent active assignment for the same
// user still fails on the per-user index and maps to
// domain.ErrDuplicateActiveAssignment.
func (r *AssignmentRepository) SaveExclusive(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error) {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}

	err := withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		sweep := bson.M{"house_id": a.HouseID, "is_active": true, "_id": bson.M{"$ne": a.ID}}
		if _, err := r.col.UpdateMany(sc, sweep, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
			return fmt.Errorf("sweep assignments: %w", err)
		}
		return r.upsert(sc, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssignmentRepository) upsert(ctx context.Context, a *domain.ChiefTenantAssignment) error {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateActiveAssignment
		}
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// EnsureIndexes creates the one-assignment-per-user constraint and the
// partial one-active-per-house constraint as race backstops for the
// invariant engine.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_unique"),
		},
		{
			Keys: bson.D{{Key: "house_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("house_active_unique").
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}
