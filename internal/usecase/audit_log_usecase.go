package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

// クエリ文字列そのまま（handlerで詰める）
type ListAuditLogsInput struct {
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	From         string
	To           string
	Limit        int
	Offset       int
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	f := repo.AuditLogFilter{
		Actor:      strings.TrimSpace(in.Actor),
		ResourceID: strings.TrimSpace(in.ResourceID),
		Limit:      in.Limit,
		Offset:     in.Offset,
	}

	if a := strings.TrimSpace(in.Action); a != "" {
		action := model.AuditAction(strings.ToUpper(a))
		switch action {
		case model.AuditActionCreate, model.AuditActionUpdate, model.AuditActionDelete, model.AuditActionUpdateOrderStatus:
			f.Action = &action
		default:
			return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
	}
	if rt := strings.TrimSpace(in.ResourceType); rt != "" {
		resource := model.AuditResourceType(strings.ToLower(rt))
		switch resource {
		case model.AuditResourceProduct, model.AuditResourceCategory, model.AuditResourceRecipe,
			model.AuditResourceEvent, model.AuditResourceOrder:
			f.ResourceType = &resource
		default:
			return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid resource_type")
		}
	}

	var ok bool
	if in.From != "" {
		if f.CreatedFrom, ok = parseDateTimeRFC3339(in.From); !ok {
			return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid from")
		}
	}
	if in.To != "" {
		if f.CreatedTo, ok = parseDateTimeRFC3339(in.To); !ok {
			return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid to")
		}
	}
	if f.Limit < 0 || f.Offset < 0 {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, fromRepoErr(err)
	}
	return logs, nil
}

func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
