package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketmuse_backend/models"
)

var (
	// ErrUserNotFound is returned when no user row matches
	ErrUserNotFound = errors.New("user not found")
	// ErrIncompleteIdentity is returned for tokens without subject or email
	ErrIncompleteIdentity = errors.New("identity needs a subject and an email")
)

// Identity is what a verified bearer token says about its caller
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// UserService keeps user rows in sync with token identities
type UserService struct {
	db          *gorm.DB
	adminEmails map[string]struct{}
}

// NewUserService creates a new user service; adminEmails grant the admin flag
func NewUserService(db *gorm.DB, adminEmails []string) *UserService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &UserService{db: db, adminEmails: admins}
}

// IsAdminEmail reports whether email is configured as an administrator
func (s *UserService) IsAdminEmail(email string) bool {
	_, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// EnsureUser creates the user on first sight and refreshes its profile after.
func (s *UserService) EnsureUser(ctx context.Context, id Identity) (models.User, error) {
	if id.UID == "" || strings.TrimSpace(id.Email) == "" {
		return models.User{}, ErrIncompleteIdentity
	}
	user := models.User{
		UID:     id.UID,
		Email:   strings.ToLower(strings.TrimSpace(id.Email)),
		Name:    id.Name,
		Picture: id.Picture,
		IsAdmin: s.IsAdminEmail(id.Email),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "picture", "is_admin", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return models.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}
	return s.Get(ctx, id.UID)
}

// Get returns the user with uid
func (s *UserService) Get(ctx context.Context, uid string) (models.User, error) {
	var user models.User
	res := s.db.WithContext(ctx).Where("uid = ?", uid).Limit(1).Find(&user)
	if res.Error != nil {
		return user, fmt.Errorf("failed to load user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return user, ErrUserNotFound
	}
	return user, nil
}

// UserListResult contains paginated user results
type UserListResult struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// List returns users newest first, optionally filtered by email or name
func (s *UserService) List(ctx context.Context, page, pageSize int, search string) (UserListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return UserListResult{}, fmt.Errorf("failed to count users: %w", err)
	}

	users := []models.User{}
	err := query.Order("created_at DESC, uid ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return UserListResult{}, fmt.Errorf("failed to list users: %w", err)
	}

	return UserListResult{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}
