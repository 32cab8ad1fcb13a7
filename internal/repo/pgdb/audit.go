package pgdb

import (
	"context"
	"encoding/json"
	"marketplace-api/internal/entity"
	"marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type AuditRepo struct {
	*postgres.Postgres
}

func NewAuditRepo(pgdb *postgres.Postgres) *AuditRepo {
	return &AuditRepo{pgdb}
}

func (r *AuditRepo) SaveAuditEvent(ctx context.Context, event *entity.AuditEvent) error {
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}

	saveReq, args, _ := r.SqlBuilder.
		Insert("audit_event").
		Columns("id", "type", "user_email", "data", "object_type", "object_id").
		Values(event.Id, event.Type, event.User, data, event.ObjectType, event.ObjectId).
		ToSql()

	_, err = r.Database.ExecContext(ctx, saveReq, args...)

	return err
}
