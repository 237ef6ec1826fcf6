// Package sqlite persists the deployment ledger in an embedded database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"api-dispatcher-service/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	cloud      TEXT NOT NULL,
	stage      TEXT NOT NULL,
	title      TEXT NOT NULL,
	release_json TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) Record(ctx context.Context, d *domain.Deployment) error {
	release, err := json.Marshal(d.Release)
	if err != nil {
		return fmt.Errorf("encode release: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO deployments (id, kind, cloud, stage, title, release_json, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), string(d.Kind), d.Cloud, d.Stage, d.Title, string(release),
		string(d.Status), d.CreatedAt.UTC().Format(time.RFC3339Nano), d.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record deployment: %w", err)
	}
	return nil
}

func (l *Ledger) Get(ctx context.Context, id uuid.UUID) (*domain.Deployment, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT id, kind, cloud, stage, title, release_json, status, created_at, updated_at
		 FROM deployments WHERE id = ?`, id.String())
	d, err := scanDeployment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDeploymentNotFound
	}
	return d, err
}

func (l *Ledger) List(ctx context.Context) ([]*domain.Deployment, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, kind, cloud, stage, title, release_json, status, created_at, updated_at
		 FROM deployments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	var deployments []*domain.Deployment
	for rows.Next() {
		d, err := scanDeployment(rows.Scan)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, rows.Err()
}

func (l *Ledger) SetStatus(ctx context.Context, id uuid.UUID, status domain.DeploymentStatus) error {
	result, err := l.db.ExecContext(ctx,
		`UPDATE deployments SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339Nano), id.String())
	if err != nil {
		return fmt.Errorf("update deployment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDeploymentNotFound
	}
	return nil
}

func scanDeployment(scan func(...any) error) (*domain.Deployment, error) {
	var (
		d                    domain.Deployment
		id, kind, status     string
		release              string
		createdAt, updatedAt string
	)
	if err := scan(&id, &kind, &d.Cloud, &d.Stage, &d.Title, &release, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse deployment id: %w", err)
	}
	d.ID = parsed
	d.Kind = domain.DeploymentKind(kind)
	d.Status = domain.DeploymentStatus(status)
	if err := json.Unmarshal([]byte(release), &d.Release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &d, nil
}
