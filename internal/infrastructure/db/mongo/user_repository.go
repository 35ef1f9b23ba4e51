package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists user documents in MongoDB. Uniqueness of email,
// id_card_number and request_id is enforced by the indexes created in
// EnsureIndexes; request_id uses a sparse index so any number of users may
// hold no token while two users can never share one.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	IDCardNumber string             `bson:"id_card_number"`
	SerialNumber string             `bson:"serial_number"`
	BirthDate    time.Time          `bson:"birth_date"`
	Gender       string             `bson:"gender,omitempty"`
	IsVerified   bool               `bson:"is_verified"`
	RequestID    string             `bson:"request_id,omitempty"`
	IDCardFace   string             `bson:"id_card_face,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Create inserts a new user document. The caller's explicit pre-checks are
// not atomic with the insert, so any of the three unique indexes may still
// fire here; the error names whichever field the index reports.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDoc(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateKeyError{Field: duplicateKeyField(err)}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIDCardNumber(ctx context.Context, idCardNumber string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"id_card_number": idCardNumber})
}

func (r *UserRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"request_id": requestID})
}

// Update overwrites the mutable fields of the stored document. An empty
// RequestID is removed with $unset rather than written as "" so the sparse
// unique index keeps ignoring the document.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"id_card_number": user.IDCardNumber,
		"serial_number":  user.SerialNumber,
		"birth_date":     user.BirthDate,
		"gender":         user.Gender,
		"is_verified":    user.IsVerified,
		"id_card_face":   user.IDCardFace,
		"updated_at":     user.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if user.RequestID == "" {
		update["$unset"] = bson.M{"request_id": ""}
	} else {
		set["request_id"] = user.RequestID
	}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateKeyError{Field: duplicateKeyField(err)}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	updated := *user
	return &updated, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDoc(&doc), nil
}

// EnsureIndexes creates the unique indexes the token lifecycle relies on.
// request_id is sparse: uniqueness applies only to documents that carry the
// field.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id_card_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// duplicateKeyField resolves which unique index a duplicate-key error fired
// on by inspecting the index name embedded in the server's error message,
// and returns the corresponding API field name.
func duplicateKeyField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return "email"
	case strings.Contains(msg, "id_card_number"):
		return "idCardNumber"
	case strings.Contains(msg, "request_id"):
		return "requestId"
	default:
		return "value"
	}
}

func toDoc(u *domain.User) userDoc {
	return userDoc{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IDCardNumber: u.IDCardNumber,
		SerialNumber: u.SerialNumber,
		BirthDate:    u.BirthDate,
		Gender:       u.Gender,
		IsVerified:   u.IsVerified,
		RequestID:    u.RequestID,
		IDCardFace:   u.IDCardFace,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromDoc(d *userDoc) *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IDCardNumber: d.IDCardNumber,
		SerialNumber: d.SerialNumber,
		BirthDate:    d.BirthDate,
		Gender:       d.Gender,
		IsVerified:   d.IsVerified,
		RequestID:    d.RequestID,
		IDCardFace:   d.IDCardFace,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
