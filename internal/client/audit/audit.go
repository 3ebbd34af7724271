// Package audit wraps the audit-log listing endpoint.
package audit

import (
	"context"
	"net/url"
	"strconv"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type Service struct {
	api *api.Client
}

func NewService(apiClient *api.Client) *Service {
	return &Service{api: apiClient}
}

// Logs returns one page of the user's audit trail, newest first.
func (s *Service) Logs(ctx context.Context, page, size int) ([]models.AuditEntry, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 20
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out []models.AuditEntry
	if err := s.api.Get(ctx, "/audit-logs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
