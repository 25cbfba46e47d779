package domain

import (
	"context"
	"time"
)

// UserRepository defines account data access. Login-state writes are guarded
// by the state's version field; reset-token redemption is a single
// conditional update keyed on the token value.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error

	// UpdateLoginState applies next only when the stored version still equals
	// state.Version; otherwise it returns ErrVersionConflict.
	UpdateLoginState(ctx context.Context, userID string, state LoginState, next LoginState) error

	// StoreLoginOTP persists a fresh verification code and writes the cleared
	// lockout state in the same update.
	StoreLoginOTP(ctx context.Context, userID, code string, expiry time.Time, cleared LoginState) error

	// StoreProfileOTP persists a profile-context verification code.
	StoreProfileOTP(ctx context.Context, userID, code string, expiry time.Time) error

	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error

	// RedeemResetToken atomically finds the user holding an unexpired token,
	// replaces the password hash, clears staySignedIn and removes the token.
	// A second redemption of the same value fails with ErrResetTokenInvalid.
	RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*User, error)

	RecordSignIn(ctx context.Context, userID string, staySignedIn bool, at time.Time) error
	ClearStaySignedIn(ctx context.Context, userID string) error
}

// PostRepository defines post data access. Reads by id see soft-deleted
// posts; listing and counting never do.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	List(ctx context.Context, filter PostListFilter) ([]*Post, error)
	Count(ctx context.Context, domain, postType string, status PostStatus) (int64, error)
	ListTitles(ctx context.Context, domain, postType string, limit int) ([]*Post, error)
	SoftDelete(ctx context.Context, id string) error
}

// PostMetaRepository defines post metadata access.
type PostMetaRepository interface {
	Create(ctx context.Context, meta *PostMeta) error
	FindByID(ctx context.Context, id string) (*PostMeta, error)
	Update(ctx context.Context, meta *PostMeta) error
}

// MediaRepository defines media document access.
type MediaRepository interface {
	Create(ctx context.Context, media *Media) error
	FindByID(ctx context.Context, id string) (*Media, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Media, error)
}

// CategoryRepository defines category access.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*Category, error)
}

// SidebarRepository stores per-user layout blobs.
type SidebarRepository interface {
	FindByUserID(ctx context.Context, userID string) (*Sidebar, error)
	Upsert(ctx context.Context, sidebar *Sidebar) (created bool, err error)
}

// SiteRepository resolves tenant records and their navigation items.
type SiteRepository interface {
	FindByName(ctx context.Context, name string) (*Site, error)
	FindNavigationItems(ctx context.Context, domainID, itemType string) ([]*NavigationItem, error)
}

// AccessRepository hydrates role and permission references.
type AccessRepository interface {
	FindRole(ctx context.Context, id string) (*Role, error)
	FindPermissions(ctx context.Context, ids []string) ([]*Permission, error)
}

// AuthService defines the account security and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, user *User, password string) error
	Login(ctx context.Context, identifier string, attempt LoginAttempt) (*LoginResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*Profile, error)
	CheckPassword(ctx context.Context, userID, password string) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error)
}

// ProfileUpdate carries the editable profile fields. ProfilePic is a base64
// payload uploaded to the object store before the record is saved.
type ProfileUpdate struct {
	Name       string
	Bio        string
	Email      string
	Password   string
	ProfilePic string
}

// OTPService defines the profile-context email verification flow.
type OTPService interface {
	Send(ctx context.Context, user *User, email string) (string, error)
	Verify(ctx context.Context, user *User, code string) error
}

// PostDetail is a post with its joins hydrated for the detail view.
type PostDetail struct {
	Post          *Post
	Meta          *PostMeta
	FeaturedImage *Media
	Categories    []*Category
}

// PostService defines the content entity manager.
type PostService interface {
	Upsert(ctx context.Context, input *PostInput, authorID, tenant string) (*Post, *PostMeta, bool, error)
	Get(ctx context.Context, id string) (*PostDetail, error)
	List(ctx context.Context, filter PostListFilter) (*PostList, error)
	ListOptions(ctx context.Context, tenant, itemType string) ([]TitleOption, error)
	SoftDelete(ctx context.Context, id string) error
	QuickEdit(ctx context.Context, id string, edit QuickEdit) error
}

// PostInput is the upsert payload for a post and its metadata.
type PostInput struct {
	ID                   string
	Title                string
	PostType             string
	Content              string
	PublicationDate      time.Time
	Categories           []string
	Tags                 []string
	FeaturedImage        string
	Status               PostStatus
	Comments             []string
	CustomFields         []CustomField
	CustomRepeaterFields []CustomField
}

// MediaService stores uploaded binaries in the object store and records
// their documents.
type MediaService interface {
	Upload(ctx context.Context, data []byte, filename string, size int64) (*Media, error)
}

// SidebarService persists per-user layout blobs.
type SidebarService interface {
	Save(ctx context.Context, userID, items string) (created bool, err error)
	Get(ctx context.Context, userID string) (*Sidebar, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and verifies session tokens. Issuance is single-shot;
// there is no refresh or rotation.
type TokenService interface {
	Issue(userID string, staySignedIn bool) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService delivers out-of-band messages. Delivery failures are
// reported to the caller but never roll back preceding state mutations.
type NotificationService interface {
	SendEmail(to, subject, htmlBody string) error
	SendSMS(to, message string) error
}

// MailRenderer renders the outbound email bodies.
type MailRenderer interface {
	VerificationCode(otp string) (subject, html string, err error)
	ResetLink(username, link string) (subject, html string, err error)
}

// MediaUploader is the object store boundary: bytes in, stable URL out.
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, folder string) (url, publicID string, err error)
}

// PolicyService defines authorization policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the casbin enforcer used by this service.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
