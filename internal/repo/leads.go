package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
)

const leadColumns = `id, reference, name, email, phone, location, message, status, source,
	client_ip, user_agent, created_at, updated_at`

// LeadRepo implements lead.Store and admin.LeadStore.
type LeadRepo struct {
	db querier
}

func NewLeadRepo(db *sql.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

func (r *LeadRepo) CreateLead(ctx context.Context, in lead.NewLead) (lead.Lead, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return lead.Lead{}, fmt.Errorf("generate lead id: %w", err)
	}

	e := in.Enquiry
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leads (id, reference, name, email, phone, location, message, status, source, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+leadColumns,
		id, in.Reference, e.Name, e.Email, e.Phone, e.Location, e.Message,
		lead.StatusNew, in.Source, in.ClientIP, in.UserAgent,
	)

	l, err := scanLead(row)
	if err != nil {
		return lead.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

func (r *LeadRepo) GetLead(ctx context.Context, id uuid.UUID) (lead.Lead, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return lead.Lead{}, lead.ErrLeadNotFound
	}
	return l, err
}

func (r *LeadRepo) ListLeads(ctx context.Context, f admin.LeadFilter) ([]lead.Lead, int, error) {
	where := ""
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where = " WHERE status = $1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	n := len(args)
	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *LeadRepo) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status lead.Status) (lead.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE leads SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns, id, status)

	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return lead.Lead{}, lead.ErrLeadNotFound
	}
	if err != nil {
		return lead.Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	return l, nil
}

func scanLead(s scanner) (lead.Lead, error) {
	var (
		l      lead.Lead
		status string
	)
	err := s.Scan(&l.ID, &l.Reference, &l.Name, &l.Email, &l.Phone, &l.Location, &l.Message,
		&status, &l.Source, &l.ClientIP, &l.UserAgent, &l.CreatedAt, &l.UpdatedAt)
	l.Status = lead.Status(status)
	return l, err
}
