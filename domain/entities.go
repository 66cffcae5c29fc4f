package domain

import "time"

// Role is the access ceiling enforced by the auth guard.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTaskSlave Role = "task_slave"
	RoleMember    Role = "member"
	RoleNormal    Role = "normal"
	RoleAnonymous Role = "anonymous"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTaskSlave, RoleMember, RoleNormal, RoleAnonymous:
		return true
	}
	return false
}

// Gender values accepted in the user extra info.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ExtraInfo is the optional structured profile data attached to a user.
type ExtraInfo struct {
	ProfileImage string     `json:"profileImage,omitempty"`
	Gender       Gender     `json:"gender,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Country      string     `json:"country,omitempty"`
	City         string     `json:"city,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// Merge returns a shallow merge of patch over e: fields supplied in patch
// replace the corresponding fields of e, everything else is kept.
func (e ExtraInfo) Merge(patch ExtraInfo) ExtraInfo {
	out := e
	if patch.ProfileImage != "" {
		out.ProfileImage = patch.ProfileImage
	}
	if patch.Gender != "" {
		out.Gender = patch.Gender
	}
	if patch.Birthday != nil {
		out.Birthday = patch.Birthday
	}
	if patch.Country != "" {
		out.Country = patch.Country
	}
	if patch.City != "" {
		out.City = patch.City
	}
	if patch.Description != "" {
		out.Description = patch.Description
	}
	return out
}

// User represents one account in the system
type User struct {
	ID           uint
	Email        string
	UserName     string
	Phone        string
	FirstName    string
	LastName     string
	IsActive     bool
	PasswordHash string
	Role         Role
	Credit       int
	ExtraInfo    *ExtraInfo
	Authorities  []Authority
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthorityKeys returns the feature keys granted to the user.
func (u *User) AuthorityKeys() []string {
	keys := make([]string, 0, len(u.Authorities))
	for _, a := range u.Authorities {
		keys = append(keys, a.FeatureKey)
	}
	return keys
}

// Authority is one feature grant owned by exactly one user. Deleting the
// user cascades deletion of its authorities.
type Authority struct {
	ID         uint
	FeatureKey string
	OwnerID    uint
}

// DefaultFeatureKey is granted to every newly registered user.
const DefaultFeatureKey = "sd"

// PrivateProfile is the full profile returned to the owner or an admin.
type PrivateProfile struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	UserName      string     `json:"userName"`
	Phone         string     `json:"phone,omitempty"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          Role       `json:"role"`
	AuthorityKeys []string   `json:"authorityKeys"`
	Credit        int        `json:"credit"`
	ExtraInfo     *ExtraInfo `json:"extraInfo,omitempty"`
}

// PublicProfile is the subset of the profile visible without authentication.
type PublicProfile struct {
	ID        uint             `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	ExtraInfo *PublicExtraInfo `json:"extraInfo,omitempty"`
}

// PublicExtraInfo is the extra-info subset exposed on the public profile.
type PublicExtraInfo struct {
	ProfileImage string `json:"profileImage,omitempty"`
	Gender       Gender `json:"gender,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Private returns the full private projection of the user.
func (u *User) Private() PrivateProfile {
	return PrivateProfile{
		ID:            u.ID,
		Email:         u.Email,
		UserName:      u.UserName,
		Phone:         u.Phone,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		AuthorityKeys: u.AuthorityKeys(),
		Credit:        u.Credit,
		ExtraInfo:     u.ExtraInfo,
	}
}

// Public returns the public projection of the user.
func (u *User) Public() PublicProfile {
	p := PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.ExtraInfo != nil {
		p.ExtraInfo = &PublicExtraInfo{
			ProfileImage: u.ExtraInfo.ProfileImage,
			Gender:       u.ExtraInfo.Gender,
			Description:  u.ExtraInfo.Description,
		}
	}
	return p
}

// RegisterParams are the transient registration inputs, never persisted.
type RegisterParams struct {
	Email     string
	UserName  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	ExtraInfo *ExtraInfo
}

// LoginParams carry exactly one of Email, UserName or Phone plus a password.
type LoginParams struct {
	Email    string
	UserName string
	Phone    string
	Password string
}

// TokenClaims are the identity claims carried by an access token.
type TokenClaims struct {
	UserID    uint
	UserName  string
	Email     string
	IssuedAt  int64
	ExpiresAt int64
}

// MaxUploadBytes is the upload size ceiling. The transport layer bounds
// its reads by it and the file service rejects anything larger.
const MaxUploadBytes = 20 * 1024 * 1024

// FileInfo describes one stored upload.
type FileInfo struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}
