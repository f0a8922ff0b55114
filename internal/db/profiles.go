package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-generator/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// GetProfile retrieves a user's profile with experiences, projects, skills
// and education. Returns nil when no profile exists for the user.
func (db *DB) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	var p types.Profile
	var skillsJSON []byte
	var email, phone, location, linkedin, summary *string

	err := db.pool.QueryRow(ctx,
		`SELECT user_id, full_name, email, phone, location, linkedin, summary, skills
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.FullName, &email, &phone, &location, &linkedin, &summary, &skillsJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Email = orEmpty(email)
	p.Phone = orEmpty(phone)
	p.Location = orEmpty(location)
	p.LinkedIn = orEmpty(linkedin)
	p.Summary = orEmpty(summary)
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &p.Skills)
	}

	if p.Experiences, err = db.listExperiences(ctx, userID); err != nil {
		return nil, err
	}
	if p.Projects, err = db.listProjects(ctx, userID); err != nil {
		return nil, err
	}
	if p.Education, err = db.listEducation(ctx, userID); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile upserts a profile and replaces its child rows. Ordinals
// preserve the order the caller supplied.
func (db *DB) SaveProfile(ctx context.Context, p *types.Profile) error {
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, full_name, email, phone, location, linkedin, summary, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		     full_name = $2, email = $3, phone = $4, location = $5,
		     linkedin = $6, summary = $7, skills = $8, updated_at = NOW()`,
		p.UserID, p.FullName, nullIfEmpty(p.Email), nullIfEmpty(p.Phone),
		nullIfEmpty(p.Location), nullIfEmpty(p.LinkedIn), nullIfEmpty(p.Summary), skillsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	// Replace child rows
	_, _ = tx.Exec(ctx, "DELETE FROM experiences WHERE user_id = $1", p.UserID)
	_, _ = tx.Exec(ctx, "DELETE FROM projects WHERE user_id = $1", p.UserID)
	_, _ = tx.Exec(ctx, "DELETE FROM education WHERE user_id = $1", p.UserID)

	for i, e := range p.Experiences {
		_, err = tx.Exec(ctx,
			`INSERT INTO experiences (id, user_id, title, company, location, start_date, end_date, is_current, description, ordinal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, p.UserID, e.Title, e.Company, nullIfEmpty(e.Location),
			nullIfEmpty(e.StartDate), nullIfEmpty(e.EndDate), e.IsCurrent, e.Description, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to save experience %s: %w", e.ID, err)
		}
	}
	for i, pr := range p.Projects {
		techJSON, mErr := json.Marshal(pr.Technologies)
		if mErr != nil {
			return fmt.Errorf("failed to marshal technologies: %w", mErr)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO projects (id, user_id, name, description, technologies, start_date, end_date, url, ordinal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			pr.ID, p.UserID, pr.Name, pr.Description, techJSON,
			nullIfEmpty(pr.StartDate), nullIfEmpty(pr.EndDate), nullIfEmpty(pr.URL), i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to save project %s: %w", pr.ID, err)
		}
	}
	for i, ed := range p.Education {
		_, err = tx.Exec(ctx,
			`INSERT INTO education (id, user_id, institution, degree, field, end_date, honors, ordinal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			ed.ID, p.UserID, ed.Institution, ed.Degree, nullIfEmpty(ed.Field),
			nullIfEmpty(ed.EndDate), nullIfEmpty(ed.Honors), i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to save education %s: %w", ed.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func (db *DB) listExperiences(ctx context.Context, userID string) ([]types.Experience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, COALESCE(location, ''), COALESCE(start_date, ''),
		        COALESCE(end_date, ''), is_current, description
		 FROM experiences WHERE user_id = $1 ORDER BY ordinal`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var out []types.Experience
	for rows.Next() {
		var e types.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate,
			&e.EndDate, &e.IsCurrent, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (db *DB) listProjects(ctx context.Context, userID string) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, description, technologies, COALESCE(start_date, ''),
		        COALESCE(end_date, ''), COALESCE(url, '')
		 FROM projects WHERE user_id = $1 ORDER BY ordinal`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var out []types.Project
	for rows.Next() {
		var p types.Project
		var techJSON []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &techJSON,
			&p.StartDate, &p.EndDate, &p.URL); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if techJSON != nil {
			_ = json.Unmarshal(techJSON, &p.Technologies)
		}
		out = append(out, p)
	}
	return out, nil
}

func (db *DB) listEducation(ctx context.Context, userID string) ([]types.Education, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, institution, degree, COALESCE(field, ''), COALESCE(end_date, ''), COALESCE(honors, '')
		 FROM education WHERE user_id = $1 ORDER BY ordinal`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	var out []types.Education
	for rows.Next() {
		var e types.Education
		if err := rows.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.EndDate, &e.Honors); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
