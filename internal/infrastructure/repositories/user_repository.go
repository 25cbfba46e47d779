package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// UserRepositoryImpl implements domain.UserRepository on MongoDB.
type UserRepositoryImpl struct {
	col *mongo.Collection
}

// dbUser is the persisted shape of a user document. Field names match the
// legacy collection so existing data keeps working.
type dbUser struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	Password     string               `bson:"password"`
	FirstName    string               `bson:"firstName,omitempty"`
	LastName     string               `bson:"lastName,omitempty"`
	Bio          string               `bson:"bio,omitempty"`
	ProfilePic   string               `bson:"profile_pic,omitempty"`
	Department   string               `bson:"department,omitempty"`
	EmpCode      string               `bson:"emp_code,omitempty"`
	Phone        string               `bson:"phone,omitempty"`
	Role         primitive.ObjectID   `bson:"role,omitempty"`
	Permissions  []primitive.ObjectID `bson:"permissions,omitempty"`

	IncorrectAttempts   int        `bson:"incorrectAttempts"`
	LoginExpiredTill    *time.Time `bson:"login_expired_till,omitempty"`
	LastIncorrectNotify int        `bson:"lastIncorrectNotificationAttempt"`
	LoginVersion        int64      `bson:"loginVersion"`

	OTP              string     `bson:"otp,omitempty"`
	OTPExpiry        *time.Time `bson:"otpExpiry,omitempty"`
	ResetToken       string     `bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time `bson:"resetTokenExpiry,omitempty"`

	StaySignedIn    bool       `bson:"staySignedIn"`
	SignInTimestamp *time.Time `bson:"signInTimestamp,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &UserRepositoryImpl{col: db.Collection("users")}
}

// Create implements domain.UserRepository.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	doc := r.domainToDB(user)
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// FindByUsername implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc dbUser
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&doc), nil
}

// Update implements domain.UserRepository. Only profile fields are written
// here; security state has its own guarded writes.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	oid, err := objectID(user.ID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"firstName":   user.FirstName,
		"lastName":    user.LastName,
		"bio":         user.Bio,
		"email":       user.Email,
		"password":    user.PasswordHash,
		"profile_pic": user.ProfilePic,
		"phone":       user.Phone,
		"updatedAt":   time.Now(),
	}})
	return err
}

// UpdateLoginState implements domain.UserRepository. The write only lands
// when the stored version still matches, so two concurrent failed attempts
// cannot both apply their read-modify-write.
func (r *UserRepositoryImpl) UpdateLoginState(ctx context.Context, userID string, state, next domain.LoginState) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}

	set := bson.M{
		"incorrectAttempts":                next.IncorrectAttempts,
		"lastIncorrectNotificationAttempt": boolToFlag(next.PriorLockout),
		"updatedAt":                        time.Now(),
	}
	update := bson.M{"$set": set, "$inc": bson.M{"loginVersion": int64(1)}}
	if next.LockedUntil.IsZero() {
		update["$unset"] = bson.M{"login_expired_till": ""}
	} else {
		set["login_expired_till"] = next.LockedUntil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "loginVersion": state.Version}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// StoreLoginOTP implements domain.UserRepository. A successful first factor
// stores the fresh code and the caller's cleared lockout state in one write.
func (r *UserRepositoryImpl) StoreLoginOTP(ctx context.Context, userID, code string, expiry time.Time, cleared domain.LoginState) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	set := bson.M{
		"otp":                              code,
		"otpExpiry":                        expiry,
		"incorrectAttempts":                cleared.IncorrectAttempts,
		"lastIncorrectNotificationAttempt": boolToFlag(cleared.PriorLockout),
		"updatedAt":                        time.Now(),
	}
	update := bson.M{"$set": set, "$inc": bson.M{"loginVersion": int64(1)}}
	if cleared.LockedUntil.IsZero() {
		update["$unset"] = bson.M{"login_expired_till": ""}
	} else {
		set["login_expired_till"] = cleared.LockedUntil
	}
	_, err = r.col.UpdateByID(ctx, oid, update)
	return err
}

// StoreProfileOTP implements domain.UserRepository.
func (r *UserRepositoryImpl) StoreProfileOTP(ctx context.Context, userID, code string, expiry time.Time) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"otp":       code,
		"otpExpiry": expiry,
		"updatedAt": time.Now(),
	}})
	return err
}

// SetResetToken implements domain.UserRepository.
func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"resetToken":       token,
		"resetTokenExpiry": expiry,
		"updatedAt":        time.Now(),
	}})
	return err
}

// RedeemResetToken implements domain.UserRepository. Lookup and clear are one
// conditional update keyed on the token value, so two concurrent redemptions
// of the same token cannot both succeed.
func (r *UserRepositoryImpl) RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error) {
	var doc dbUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"resetToken": token, "resetTokenExpiry": bson.M{"$gt": now}},
		bson.M{
			"$set": bson.M{
				"password":        passwordHash,
				"staySignedIn":    false,
				"signInTimestamp": now,
				"updatedAt":       now,
			},
			"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&doc), nil
}

// RecordSignIn implements domain.UserRepository.
func (r *UserRepositoryImpl) RecordSignIn(ctx context.Context, userID string, staySignedIn bool, at time.Time) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"staySignedIn":    staySignedIn,
		"signInTimestamp": at,
		"updatedAt":       time.Now(),
	}})
	return err
}

// ClearStaySignedIn implements domain.UserRepository.
func (r *UserRepositoryImpl) ClearStaySignedIn(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"staySignedIn": false,
		"updatedAt":    time.Now(),
	}})
	return err
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *dbUser {
	doc := &dbUser{
		Username:            user.Username,
		Email:               user.Email,
		Password:            user.PasswordHash,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Bio:                 user.Bio,
		ProfilePic:          user.ProfilePic,
		Department:          user.Department,
		EmpCode:             user.EmpCode,
		Phone:               user.Phone,
		IncorrectAttempts:   user.Login.IncorrectAttempts,
		LastIncorrectNotify: boolToFlag(user.Login.PriorLockout),
		LoginVersion:        user.Login.Version,
		OTP:                 user.OTP,
		StaySignedIn:        user.StaySignedIn,
	}
	if user.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			doc.ID = oid
		}
	}
	if user.RoleID != "" {
		if oid, err := primitive.ObjectIDFromHex(user.RoleID); err == nil {
			doc.Role = oid
		}
	}
	doc.Permissions = objectIDs(user.Permissions)
	if !user.Login.LockedUntil.IsZero() {
		t := user.Login.LockedUntil
		doc.LoginExpiredTill = &t
	}
	if !user.OTPExpiry.IsZero() {
		t := user.OTPExpiry
		doc.OTPExpiry = &t
	}
	if user.ResetToken != "" {
		doc.ResetToken = user.ResetToken
		t := user.ResetTokenExpiry
		doc.ResetTokenExpiry = &t
	}
	if !user.SignInTimestamp.IsZero() {
		t := user.SignInTimestamp
		doc.SignInTimestamp = &t
	}
	return doc
}

func (r *UserRepositoryImpl) dbToDomain(doc *dbUser) *domain.User {
	user := &domain.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Bio:          doc.Bio,
		ProfilePic:   doc.ProfilePic,
		Department:   doc.Department,
		EmpCode:      doc.EmpCode,
		Phone:        doc.Phone,
		Permissions:  hexIDs(doc.Permissions),
		OTP:          doc.OTP,
		ResetToken:   doc.ResetToken,
		StaySignedIn: doc.StaySignedIn,
		Login: domain.LoginState{
			IncorrectAttempts: doc.IncorrectAttempts,
			PriorLockout:      doc.LastIncorrectNotify != 0,
			Version:           doc.LoginVersion,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if !doc.Role.IsZero() {
		user.RoleID = doc.Role.Hex()
	}
	if doc.LoginExpiredTill != nil {
		user.Login.LockedUntil = *doc.LoginExpiredTill
	}
	if doc.OTPExpiry != nil {
		user.OTPExpiry = *doc.OTPExpiry
	}
	if doc.ResetTokenExpiry != nil {
		user.ResetTokenExpiry = *doc.ResetTokenExpiry
	}
	if doc.SignInTimestamp != nil {
		user.SignInTimestamp = *doc.SignInTimestamp
	}
	return user
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
