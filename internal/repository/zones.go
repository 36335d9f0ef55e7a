package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
)

// GetAllZones 按 id 升序返回所有区域，这个顺序就是候选向量的布局顺序
func (r *Repository) GetAllZones() ([]*domain.Zone, error) {
	query := `
		SELECT id, name, population, risk, created_at, version
		FROM zones
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)
	for rows.Next() {
		zone := &domain.Zone{}
		dst := []any{&zone.ID, &zone.Name, &zone.Population, &zone.Risk, &zone.CreatedAt, &zone.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}

func (r *Repository) GetZoneByID(id int64) (*domain.Zone, error) {
	query := `
		SELECT name, population, risk, created_at, version
		FROM zones WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	zone := &domain.Zone{
		ID: id,
	}

	dst := []any{&zone.Name, &zone.Population, &zone.Risk, &zone.CreatedAt, &zone.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return zone, nil
}

func (r *Repository) CreateZone(zone *domain.Zone) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO zones (name, population, risk)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, zone.Name, zone.Population, zone.Risk).Scan(&zone.ID, &zone.CreatedAt, &zone.Version); err != nil {
		return err
	}

	return nil
}

// CreateZones 在同一个事务中插入多个区域，任何一个失败都会整体回滚
func (r *Repository) CreateZones(zones []*domain.Zone) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO zones (name, population, risk)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	for _, zone := range zones {
		if err := tx.QueryRowContext(ctx, query, zone.Name, zone.Population, zone.Risk).Scan(&zone.ID, &zone.CreatedAt, &zone.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateZone(zone *domain.Zone) error {
	query := `
		UPDATE zones
		SET
			name = $1,
			population = $2,
			risk = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{zone.Name, zone.Population, zone.Risk, zone.ID, zone.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&zone.CreatedAt, &zone.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteZone(id int64) error {
	query := `
		DELETE FROM zones WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
