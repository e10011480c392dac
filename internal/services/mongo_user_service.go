package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/store"
)

// MongoUserService owns registration, credential checks, the session-token
// lifecycle, and account deletion (including the cascade over owned
// content).
type MongoUserService struct {
	users     *mongo.Collection
	items     *mongo.Collection
	photos    *mongo.Collection
	videos    *mongo.Collection
	carousels *mongo.Collection
	jwtSecret []byte
}

func NewMongoUserService(st *store.Store, jwtSecret string) *MongoUserService {
	return &MongoUserService{
		users:     st.Users,
		items:     st.Items,
		photos:    st.Photos,
		videos:    st.Videos,
		carousels: st.Carousels,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *MongoUserService) Register(req *models.RegisterRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Tokens:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// FindByCredentials resolves a user by email and plaintext password. Both
// failure modes are ErrInvalidCredentials; the messages differ.
func (s *MongoUserService) FindByCredentials(email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &credentialError{msg: msgUnknownEmail}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &credentialError{msg: msgWrongPassword}
	}
	return &user, nil
}

// GenerateAuthToken mints a signed session token, appends it to the user's
// live token list, and persists the list. Tokens have no expiry; they are
// revoked by removal from the list.
func (s *MongoUserService) GenerateAuthToken(user *models.User) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	_, err = s.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$push": bson.M{"tokens": token},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return "", err
	}

	user.Tokens = append(user.Tokens, token)
	return token, nil
}

// FindByToken is the auth-guard lookup: the user must match the token's
// embedded identity and still hold that exact token.
func (s *MongoUserService) FindByToken(userID, token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": userID, "tokens": token}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) GetByID(userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Logout removes exactly the token used for the current session.
func (s *MongoUserService) Logout(userID, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"tokens": token},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}

// LogoutAll revokes every session at once.
func (s *MongoUserService) LogoutAll(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"tokens": []string{}, "updated_at": time.Now().UTC()}},
	)
	return err
}

// ChangePassword verifies the current password before re-hashing. The hash
// is recomputed only here; no other save path touches the password field.
func (s *MongoUserService) ChangePassword(user *models.User, current, newPassword string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return &credentialError{msg: msgWrongCurrentPassword}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": string(hash), "updated_at": time.Now().UTC()}},
	)
	return err
}

// Delete removes the user and everything it owns. Dependent records go
// first so a failure never leaves content without a resolvable owner.
func (s *MongoUserService) Delete(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	owned := bson.M{"owner": userID}
	for _, coll := range []*mongo.Collection{s.items, s.photos, s.videos, s.carousels} {
		if _, err := coll.DeleteMany(ctx, owned); err != nil {
			return fmt.Errorf("cascade delete %s: %w", coll.Name(), err)
		}
	}

	res, err := s.users.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
