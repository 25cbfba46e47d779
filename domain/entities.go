package domain

import "time"

// User represents an account in the system. Security and session fields are
// mutated only by the auth and verification services.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Bio          string
	ProfilePic   string
	Department   string
	EmpCode      string
	Phone        string
	RoleID       string
	Permissions  []string

	// One-time codes. The OTP and the reset token are issued and checked
	// independently; neither invalidates the other.
	OTP              string
	OTPExpiry        time.Time
	ResetToken       string
	ResetTokenExpiry time.Time

	// Session preference.
	StaySignedIn    bool
	SignInTimestamp time.Time

	Login LoginState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoginState is the progressive-lockout bookkeeping carried on a user record.
// A LockedUntil in the future means every login attempt is denied, regardless
// of password correctness.
type LoginState struct {
	IncorrectAttempts int
	LockedUntil       time.Time
	PriorLockout      bool
	Version           int64
}

// Locked reports whether the account is in the deny-all-login state at now.
func (s LoginState) Locked(now time.Time) bool {
	return !s.LockedUntil.IsZero() && s.LockedUntil.After(now)
}

// LoginAttempt is the login request resolved into exactly one variant at the
// HTTP boundary. Each variant is handled by its own function in the auth
// service, so the sub-protocol dispatch stays exhaustive.
type LoginAttempt interface {
	isLoginAttempt()
}

// PasswordLogin is the first factor of the two-step login: on success the
// account receives an emailed verification code, not a session token.
type PasswordLogin struct {
	Password     string
	StaySignedIn bool
}

// CodeVerification is the second factor: password plus the emailed code.
// On success a session token is issued.
type CodeVerification struct {
	Password     string
	Code         string
	StaySignedIn bool
}

// DirectLogin is a password-only attempt with no form discriminator; it
// issues a session token immediately.
type DirectLogin struct {
	Password     string
	StaySignedIn bool
}

// ForgotPassword requests a reset link; the password check is skipped
// entirely and lockout counters are left untouched.
type ForgotPassword struct{}

func (PasswordLogin) isLoginAttempt()    {}
func (CodeVerification) isLoginAttempt() {}
func (DirectLogin) isLoginAttempt()      {}
func (ForgotPassword) isLoginAttempt()   {}

// LoginOutcome tags what a successful Login call produced.
type LoginOutcome int

const (
	// OutcomeCodeSent means the verification code was emailed; no token yet.
	OutcomeCodeSent LoginOutcome = iota
	// OutcomeResetLinkSent means the password-reset link was emailed.
	OutcomeResetLinkSent
	// OutcomeTokenIssued means a session token was issued.
	OutcomeTokenIssued
)

// LoginResult is the successful outcome of a login attempt.
type LoginResult struct {
	Outcome LoginOutcome
	Token   string
	User    *User
}

// TokenClaims is the verified content of a session token. The payload
// carries only the account identifier.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Profile is the outward view of a user, with role and permissions hydrated.
type Profile struct {
	ID          string       `json:"_id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Bio         string       `json:"bio"`
	ProfilePic  string       `json:"profile_pic"`
	Role        string       `json:"roles"`
	Permissions []Permission `json:"permissions"`
}

// PostStatus enumerates the allowed post statuses.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusTrash     PostStatus = "trash"
	StatusArchived  PostStatus = "archived"
)

// ValidPostStatus reports whether s is one of the allowed status values.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusTrash, StatusArchived:
		return true
	}
	return false
}

// Post is the content entity. Posts are soft-deleted, never removed, and own
// exactly one PostMeta once custom fields have been saved.
type Post struct {
	ID              string
	Title           string
	Slug            string
	PostType        string
	Domain          string
	Content         string
	AuthorID        string
	PublicationDate time.Time
	Categories      []string
	Tags            []string
	FeaturedImage   string
	Status          PostStatus
	Comments        []string
	Deleted         bool
	PostMetaID      string
}

// CustomField is one ordered key/value entry of a post's metadata.
type CustomField struct {
	Key   string `json:"key" bson:"key"`
	Value any    `json:"value" bson:"value"`
}

// PostMeta holds the custom fields of its owning post. Its lifecycle is tied
// to the post; it is meaningless on its own.
type PostMeta struct {
	ID                   string
	Title                string
	CustomFields         []CustomField
	CustomRepeaterFields []CustomField
}

// PostListFilter selects posts for listing. Page is 1-indexed.
type PostListFilter struct {
	Domain   string
	PostType string
	Status   PostStatus
	Search   string
	Page     int
	Limit    int
}

// PostListItem is a listed post with its hydrated joins.
type PostListItem struct {
	Post       *Post
	Images     []*Media
	Categories []string
}

// PostList is one page of posts plus counts computed over the whole filter.
type PostList struct {
	Posts          []*PostListItem
	TotalCount     int64
	DraftCount     int64
	PublishedCount int64
	CurrentPage    int
}

// QuickEdit is the restricted partial update applied by the list view.
type QuickEdit struct {
	Title           string
	Slug            string
	Status          PostStatus
	PublicationDate time.Time
}

// Media is an uploaded binary stored in the object store; only the URL and
// identifier live here.
type Media struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	AltText      string `json:"alt_text"`
	CloudinaryID string `json:"-"`
	Filename     string `json:"filename,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// Category is referenced, not owned, by posts.
type Category struct {
	ID     string
	Name   string
	Domain string
}

// NavigationItem is a navigation entry scoped to a site.
type NavigationItem struct {
	ID       string
	Label    string
	Type     string
	DomainID string
}

// Site is a tenant record; the Domain request header resolves to one.
type Site struct {
	ID   string
	Name string
}

// TitleOption is a {value,label} pair for post-type and page pickers.
type TitleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Sidebar holds one user's UI layout as an opaque serialized blob.
type Sidebar struct {
	ID     string
	UserID string
	Items  string
}

// Role names a user role.
type Role struct {
	ID   string
	Name string
}

// Permission names one permitted action within a module.
type Permission struct {
	ID     string `json:"-"`
	Name   string `json:"name"`
	Module string `json:"module"`
}
