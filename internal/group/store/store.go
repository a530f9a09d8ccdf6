package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kuhlali/chamapro-extend/internal/group"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectGroupColumns.
func scanGroup(s scanner) (*group.Group, error) {
	var (
		g               group.Group
		freq, plan, sub string
		day, weekday    sql.NullInt64
	)

	if err := s.Scan(
		&g.ID, &g.Name, &g.Slug, &g.Description, &g.Excerpt,
		&freq, &g.ContributionAmount, &day, &weekday,
		&g.PenaltyAmount, &g.PenaltyGraceDays,
		&g.County, &g.Constituency, &g.Phone, &g.Email,
		&g.IsActive, &g.IsPublic,
		&plan, &sub, &g.SubscriptionExpiry,
		&g.MetaTitle, &g.MetaDescription, &g.MetaKeywords,
		&g.Balance, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	g.Frequency = group.Frequency(freq)
	g.Plan = group.Plan(plan)
	g.SubscriptionStatus = group.SubscriptionStatus(sub)

	if day.Valid {
		g.ContributionDay = new(int(day.Int64))
	}

	if weekday.Valid {
		g.ContributionWeekday = new(time.Weekday(weekday.Int64))
	}

	return &g, nil
}

const selectGroupColumns = `
	c.id, c.name, c.slug, c.description, c.excerpt,
	c.contribution_frequency, c.contribution_amount, c.contribution_day, c.contribution_weekday,
	c.penalty_amount, c.penalty_grace_days,
	c.county, c.constituency, c.phone, c.email,
	c.is_active, c.is_public,
	c.subscription_plan, c.subscription_status, c.subscription_expiry,
	c.meta_title, c.meta_description, c.meta_keywords,
	c.total_balance, c.created_by, c.created_at, c.updated_at
`

func (s *Store) CreateGroup(ctx context.Context, g *group.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var weekday *int
	if g.ContributionWeekday != nil {
		weekday = new(int(*g.ContributionWeekday))
	}

	query := `
		INSERT INTO chamas (
			name, slug, description, excerpt,
			contribution_frequency, contribution_amount, contribution_day, contribution_weekday,
			penalty_amount, penalty_grace_days,
			county, constituency, phone, email, is_active, is_public,
			subscription_plan, subscription_status, subscription_expiry,
			meta_title, meta_description, meta_keywords,
			created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW())
		RETURNING id, total_balance, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		g.Name, g.Slug, g.Description, g.Excerpt,
		g.Frequency, g.ContributionAmount, g.ContributionDay, weekday,
		g.PenaltyAmount, g.PenaltyGraceDays,
		g.County, g.Constituency, g.Phone, g.Email, g.IsActive, g.IsPublic,
		g.Plan, g.SubscriptionStatus, g.SubscriptionExpiry,
		g.MetaTitle, g.MetaDescription, g.MetaKeywords,
		g.CreatedBy,
	).Scan(&g.ID, &g.Balance, &g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return group.ErrSlugTaken
		}

		return fmt.Errorf("creating group: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chama_members (chama_id, user_id, role, joined_at) VALUES ($1, $2, $3, NOW())`,
		g.ID, g.CreatedBy, group.RoleCreator,
	); err != nil {
		return fmt.Errorf("adding creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing group: %w", err)
	}

	return nil
}

func (s *Store) GetGroup(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	query := `SELECT ` + selectGroupColumns + ` FROM chamas c WHERE c.id = $1`

	g, err := scanGroup(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, group.ErrNotFound
		}

		return nil, fmt.Errorf("getting group: %w", err)
	}

	return g, nil
}

func (s *Store) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]*group.Group, error) {
	query := `SELECT ` + selectGroupColumns + `
		FROM chamas c
		WHERE c.created_by = $1
		   OR EXISTS (SELECT 1 FROM chama_members m WHERE m.chama_id = c.id AND m.user_id = $1)
		ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []*group.Group

	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}

		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}

	return groups, nil
}

const selectMemberColumns = `
	m.chama_id, m.user_id, m.role, m.joined_at,
	u.username, u.email, u.first_name, u.last_name, u.phone_number
`

func scanMember(s scanner) (*group.Member, error) {
	var (
		m    group.Member
		role string
	)

	if err := s.Scan(
		&m.GroupID, &m.UserID, &role, &m.JoinedAt,
		&m.Username, &m.Email, &m.FirstName, &m.LastName, &m.PhoneNumber,
	); err != nil {
		return nil, err
	}

	m.Role = group.Role(role)

	return &m, nil
}

func (s *Store) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*group.Member, error) {
	query := `SELECT ` + selectMemberColumns + `
		FROM chama_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.chama_id = $1 AND m.user_id = $2`

	m, err := scanMember(s.db.QueryRowContext(ctx, query, groupID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, group.ErrNotMember
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return m, nil
}

func (s *Store) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*group.Member, error) {
	query := `SELECT ` + selectMemberColumns + `
		FROM chama_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.chama_id = $1
		ORDER BY m.role = 'creator' DESC, m.joined_at ASC`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*group.Member

	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	return members, nil
}

func (s *Store) AddMember(ctx context.Context, groupID, userID uuid.UUID, role group.Role) (*group.Member, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chama_members (chama_id, user_id, role, joined_at) VALUES ($1, $2, $3, NOW())`,
		groupID, userID, role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, group.ErrAlreadyMember
		}

		return nil, fmt.Errorf("adding member: %w", err)
	}

	return s.GetMember(ctx, groupID, userID)
}

func (s *Store) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chama_members WHERE chama_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	if n == 0 {
		return group.ErrNotMember
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
