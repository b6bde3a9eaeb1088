package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// Formats used to send DATE and TIME parameters as text, so the session time zone
// never shifts a calendar date.
const (
	sqlDateLayout = "2006-01-02"
	sqlTimeLayout = "15:04:05"
)

const eventColumns = `id, title, description, event_date, event_time, location, created_by_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent scans eventColumns followed by any extra destinations.
func scanEvent(row rowScanner, extra ...any) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	dest := []any{
		&e.ID, &e.Title, &descNull, &e.EventDate, &e.EventTime, &e.Location, &e.CreatedByID, &e.CreatedAt, &e.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	e.EventDate = time.Date(e.EventDate.Year(), e.EventDate.Month(), e.EventDate.Day(), 0, 0, 0, 0, time.UTC)
	e.EventTime = time.Date(0, 1, 1, e.EventTime.Hour(), e.EventTime.Minute(), e.EventTime.Second(), 0, time.UTC)
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, event_date, event_time, location, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, nullString(e.Description), e.EventDate.Format(sqlDateLayout), e.EventTime.Format(sqlTimeLayout),
		e.Location, e.CreatedByID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.description, e.event_date, e.event_time, e.location, e.created_by_id, e.created_at, e.updated_at, u.email
		FROM events e
		JOIN users u ON u.id = e.created_by_id
		WHERE e.id = $1
	`
	var creatorEmail string
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id), &creatorEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.CreatedBy = &domain.UserSummary{ID: e.CreatedByID, Email: creatorEmail}
	return e, nil
}

func (r *eventRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	query := `SELECT created_by_id FROM events WHERE id = $1`
	var ownerID string
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}

func (r *eventRepository) ListByCreator(ctx context.Context, createdByID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE created_by_id = $1
		ORDER BY event_date ASC, event_time ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, createdByID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.SetDescription {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, nullString(patch.Description))
		n++
	}
	if patch.EventDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_date = $%d", n))
		args = append(args, patch.EventDate.Format(sqlDateLayout))
		n++
	}
	if patch.EventTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_time = $%d", n))
		args = append(args, patch.EventTime.Format(sqlTimeLayout))
		n++
	}
	if patch.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *patch.Location)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
