package domain

import (
	"context"
	"io"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"` // bcrypt hash
	FullName     string    `json:"fullName"`
	ProfileImage *string   `json:"profileImage"`
	Bio          *string   `json:"bio"`
	Location     *string   `json:"location"`
	Skills       []string  `json:"skills"`
	Experience   *string   `json:"experience"`
	IsRecruiter  bool      `json:"isRecruiter"`
	CVURL        *string   `json:"cvUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserInput creates a user. Password must already be hashed when it reaches a repository.
type UserInput struct {
	Username     string
	Email        string
	Password     string
	FullName     string
	ProfileImage *string
	Bio          *string
	Location     *string
	Skills       []string
	Experience   *string
	IsRecruiter  bool
}

type UserPatch struct {
	Email        *string
	Password     *string
	FullName     *string
	ProfileImage *string
	Bio          *string
	Location     *string
	Skills       []string
	Experience   *string
	IsRecruiter  *bool
	CVURL        *string
}

func NewUser(id int64, in UserInput, createdAt time.Time) User {
	return User{
		ID:           id,
		Username:     in.Username,
		Email:        in.Email,
		Password:     in.Password,
		FullName:     in.FullName,
		ProfileImage: cloneString(in.ProfileImage),
		Bio:          cloneString(in.Bio),
		Location:     cloneString(in.Location),
		Skills:       listOf(in.Skills),
		Experience:   cloneString(in.Experience),
		IsRecruiter:  in.IsRecruiter,
		CreatedAt:    createdAt,
	}
}

func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.ProfileImage != nil {
		u.ProfileImage = cloneString(p.ProfileImage)
	}
	if p.Bio != nil {
		u.Bio = cloneString(p.Bio)
	}
	if p.Location != nil {
		u.Location = cloneString(p.Location)
	}
	if p.Skills != nil {
		u.Skills = cloneStrings(p.Skills)
	}
	if p.Experience != nil {
		u.Experience = cloneString(p.Experience)
	}
	if p.IsRecruiter != nil {
		u.IsRecruiter = *p.IsRecruiter
	}
	if p.CVURL != nil {
		u.CVURL = cloneString(p.CVURL)
	}
}

func (u User) Clone() User {
	c := u
	c.ProfileImage = cloneString(u.ProfileImage)
	c.Bio = cloneString(u.Bio)
	c.Location = cloneString(u.Location)
	c.Skills = cloneStrings(u.Skills)
	c.Experience = cloneString(u.Experience)
	c.CVURL = cloneString(u.CVURL)
	return c
}

type UserRepository interface {
	Create(ctx context.Context, in UserInput) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*User, error)
}

// Upload is a file received from a profile form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type UserUsecase interface {
	Register(ctx context.Context, in UserInput) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, patch UserPatch) (*User, error)
	UploadCV(ctx context.Context, id int64, file Upload) (*User, error)
	UploadAvatar(ctx context.Context, id int64, file Upload) (*User, error)
}
