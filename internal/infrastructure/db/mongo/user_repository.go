package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memberhub/registration-system/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index backing uniqueness enforcement.
// Call once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash"`
	FirstName          string             `bson:"first_name"`
	LastName           string             `bson:"last_name"`
	FatherFirstName    string             `bson:"father_first_name"`
	FatherLastName     string             `bson:"father_last_name"`
	DateOfBirth        time.Time          `bson:"date_of_birth"`
	MobileNumber       string             `bson:"mobile_number"`
	ProfilePicture     []byte             `bson:"profile_picture,omitempty"`
	ProfilePictureType string             `bson:"profile_picture_type,omitempty"`
	EmailConfirmed     bool               `bson:"email_confirmed"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		FatherFirstName: user.FatherFirstName,
		FatherLastName:  user.FatherLastName,
		DateOfBirth:     user.DateOfBirth,
		MobileNumber:    user.MobileNumber,
		CreatedAt:       user.CreatedAt.Unix(),
		UpdatedAt:       user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// SaveProfilePicture attaches the uploaded image to an existing account as a
// dedicated update, keeping the picture write an explicit persistence step.
func (r *MongoUserRepository) SaveProfilePicture(ctx context.Context, id string, picture []byte, contentType string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"profile_picture":      picture,
		"profile_picture_type": contentType,
		"updated_at":           time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("save profile picture: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) ConfirmEmail(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"email_confirmed": true,
		"updated_at":      time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                 mu.ID.Hex(),
		Email:              mu.Email,
		PasswordHash:       mu.PasswordHash,
		FirstName:          mu.FirstName,
		LastName:           mu.LastName,
		FatherFirstName:    mu.FatherFirstName,
		FatherLastName:     mu.FatherLastName,
		DateOfBirth:        mu.DateOfBirth.UTC(),
		MobileNumber:       mu.MobileNumber,
		ProfilePicture:     mu.ProfilePicture,
		ProfilePictureType: mu.ProfilePictureType,
		EmailConfirmed:     mu.EmailConfirmed,
		CreatedAt:          unixToTime(mu.CreatedAt),
		UpdatedAt:          unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
