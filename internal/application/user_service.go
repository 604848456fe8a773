package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

// UserService covers the profile plumbing around the auth core: reads,
// updates, soft deactivation, photo upload to GCS, and Elasticsearch
// indexing/search.
type UserService struct {
	Creds        *CredentialStore
	GCS          *storage.Client
	GCSBucket    string
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(creds *CredentialStore, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Creds:        creds,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// Register creates a user and indexes the profile.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u, err := s.Creds.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// GetProfile returns the user by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Creds.FindByID(ctx, userID)
}

// List returns users page by page.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.Creds.users.List(ctx, limit, offset)
	if err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// UpdateProfileInput carries optional profile mutations; empty fields are
// left untouched.
type UpdateProfileInput struct {
	Phone       string
	CountryCode string
	FirstName   string
	LastName    string
}

// UpdateProfile applies non-empty fields and re-indexes the profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Creds.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Phone != "" && in.Phone != u.Phone {
		u.Phone = in.Phone
		// A new phone number must be proven again.
		u.PhoneVerified = false
	}
	if in.CountryCode != "" {
		u.CountryCode = in.CountryCode
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.Creds.users.Update(ctx, u); err != nil {
		return nil, storageErr(err)
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Deactivate soft-disables the account and is expected to be paired with a
// RevokeAll by the caller.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.Creds.SetActive(ctx, userID, false)
}

// UploadPhoto stores a user photo in GCS and records its URL on the profile.
func (s *UserService) UploadPhoto(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Creds.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("photos", userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	u.UpdatedAt = time.Now().UTC()
	if err := s.Creds.users.Update(ctx, u); err != nil {
		return "", storageErr(err)
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
		"active":     u.Active,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a multi_match search on email and names.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
