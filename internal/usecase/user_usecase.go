package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"
	"jobflix-backend/pkg/filestore"
	"jobflix-backend/pkg/imaging"
)

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(pw string) (string, error)
}

type userUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	files    filestore.Store
	audit    *audit.Logger
}

func NewUserUsecase(userRepo domain.UserRepository, hasher PasswordHasher, files filestore.Store, auditLog *audit.Logger) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		files:    files,
		audit:    auditLog,
	}
}

func (u *userUsecase) Register(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	in.Password = hash

	user, err := u.userRepo.Create(ctx, in)
	if errors.Is(err, domain.ErrConflict) {
		return nil, apperror.Conflict("Username or email already in use")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Record(ctx, audit.EventUserRegistered, "user", user.ID, map[string]any{
		"email":        audit.MaskEmail(user.Email),
		"is_recruiter": user.IsRecruiter,
	})
	return user, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "User")
	}
	return user, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		hash, err := u.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		patch.Password = &hash
	}

	user, err := u.userRepo.Update(ctx, id, patch)
	if errors.Is(err, domain.ErrConflict) {
		return nil, apperror.Conflict("Email already in use")
	}
	if err != nil {
		return nil, storageError(err, "User")
	}

	u.audit.Record(ctx, audit.EventUserUpdated, "user", user.ID, nil)
	return user, nil
}

func (u *userUsecase) UploadCV(ctx context.Context, id int64, file domain.Upload) (*domain.User, error) {
	url, err := u.store(ctx, id, file, filestore.CVRule, nil)
	if err != nil {
		return nil, err
	}
	return u.setFileURL(ctx, id, domain.UserPatch{CVURL: &url}, "cv")
}

// UploadAvatar stores the picture downscaled and re-encoded as JPEG.
func (u *userUsecase) UploadAvatar(ctx context.Context, id int64, file domain.Upload) (*domain.User, error) {
	url, err := u.store(ctx, id, file, filestore.AvatarRule, func(data []byte) ([]byte, error) {
		return imaging.CompressJPEG(data, imaging.DefaultMaxDimension, imaging.DefaultQuality)
	})
	if err != nil {
		return nil, err
	}
	return u.setFileURL(ctx, id, domain.UserPatch{ProfileImage: &url}, "avatar")
}

func (u *userUsecase) store(ctx context.Context, id int64, file domain.Upload, rule filestore.Rule, transform func([]byte) ([]byte, error)) (string, error) {
	if _, err := u.userRepo.GetByID(ctx, id); err != nil {
		return "", storageError(err, "User")
	}
	if file.Size > rule.MaxBytes {
		return "", u.rejectUpload(ctx, id, rule, file.Filename, filestore.ErrTooLarge)
	}

	// One byte past the limit is enough to tell an oversized body apart.
	data, err := io.ReadAll(io.LimitReader(file.Content, rule.MaxBytes+1))
	if err != nil {
		return "", apperror.BadRequest("failed to read uploaded file")
	}

	validated, err := rule.Validate(file.Filename, data)
	if err != nil {
		return "", u.rejectUpload(ctx, id, rule, file.Filename, err)
	}

	ext, contentType := validated.Extension, validated.ContentType
	if transform != nil {
		if data, err = transform(data); err != nil {
			return "", u.rejectUpload(ctx, id, rule, file.Filename, fmt.Errorf("%w: %v", filestore.ErrNotAllowed, err))
		}
		ext, contentType = ".jpg", "image/jpeg"
	}

	key := filestore.NewKey(rule.Name, id, ext)
	url, err := u.files.Put(ctx, key, contentType, data)
	if err != nil {
		return "", apperror.Internal(err)
	}

	u.audit.Record(ctx, audit.EventFileUploaded, "user", id, map[string]any{
		"kind": rule.Name,
		"key":  key,
		"size": len(data),
	})
	return url, nil
}

func (u *userUsecase) setFileURL(ctx context.Context, id int64, patch domain.UserPatch, kind string) (*domain.User, error) {
	user, err := u.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err, "User")
	}
	u.audit.Record(ctx, audit.EventUserUpdated, "user", id, map[string]any{"field": kind})
	return user, nil
}

func (u *userUsecase) rejectUpload(ctx context.Context, id int64, rule filestore.Rule, filename string, cause error) error {
	u.audit.Record(ctx, audit.EventUploadRejected, "user", id, map[string]any{
		"kind":     rule.Name,
		"filename": filename,
		"reason":   cause.Error(),
	})
	if errors.Is(cause, filestore.ErrTooLarge) {
		return apperror.PayloadTooLarge(fmt.Sprintf("File too large. Max size for %s is %d MB", rule.Name, rule.MaxBytes>>20))
	}
	return apperror.UnsupportedMediaType(cause.Error())
}
