package repository

import (
	"context"
	"fmt"

	"github.com/ventureradar/venture-radar/internal/models"
)

// ListTeamMembers возвращает участников команды в порядке вступления.
func (s *Storage) ListTeamMembers(ctx context.Context) ([]*models.TeamMember, error) {
	const op = "storage.ListTeamMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, role, status, joined_at
			  FROM team_members
			  ORDER BY joined_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TeamMember
	for rows.Next() {
		m := &models.TeamMember{}
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role, &m.Status, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		m.Role = models.TeamRole(role)
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTeamMember добавляет приглашённого участника со статусом pending
// и возвращает его ID.
func (s *Storage) CreateTeamMember(ctx context.Context, member models.TeamMember) (int, error) {
	const op = "storage.CreateTeamMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO team_members (name, email, role, status, joined_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		member.Name, member.Email, member.Role, member.Status).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateTeamMemberRole меняет роль участника и возвращает количество
// изменённых строк.
func (s *Storage) UpdateTeamMemberRole(ctx context.Context, id int, role models.TeamRole) (int, error) {
	const op = "storage.UpdateTeamMemberRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE team_members SET role = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, role, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTeamMember удаляет участника по ID и возвращает количество
// удалённых строк.
func (s *Storage) RemoveTeamMember(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveTeamMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM team_members WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountTeamMembers возвращает количество участников команды.
func (s *Storage) CountTeamMembers(ctx context.Context) (int, error) {
	const op = "storage.CountTeamMembers"
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM team_members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
