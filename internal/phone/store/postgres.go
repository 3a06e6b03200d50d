package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"phoneinventory/internal/phone/models"
	"phoneinventory/pkg/platform/sentinel"
)

// Postgres persists phone records in PostgreSQL. The store is pure I/O —
// validation and field-level rules belong to the models and service layers.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed phone store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const phoneColumns = `id, serial_number, imei, model, brand, network_technologies,
	number_of_cameras, number_of_cores, weight, battery_capacity, cost`

// EnsureSchema creates the phones table if it does not exist. This is the
// single-table bootstrap, not a migration tool.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS phones (
			id BIGSERIAL PRIMARY KEY,
			serial_number VARCHAR(11) NOT NULL CONSTRAINT phones_serial_number_key UNIQUE,
			imei VARCHAR(15) NOT NULL CONSTRAINT phones_imei_key UNIQUE,
			model VARCHAR(50) NOT NULL,
			brand VARCHAR(50) NOT NULL,
			network_technologies VARCHAR(100) NOT NULL,
			number_of_cameras INTEGER NOT NULL,
			number_of_cores INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			battery_capacity INTEGER NOT NULL,
			cost DOUBLE PRECISION NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure phones schema: %w", err)
	}
	return nil
}

func (s *Postgres) Insert(ctx context.Context, phone *models.Phone) (*models.Phone, error) {
	query := `
		INSERT INTO phones (serial_number, imei, model, brand, network_technologies,
			number_of_cameras, number_of_cores, weight, battery_capacity, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	stored := phone.Clone()
	err := s.db.QueryRowContext(ctx, query,
		phone.SerialNumber,
		phone.IMEI,
		phone.Model,
		phone.Brand,
		phone.CanonicalTechnologies(),
		phone.NumberOfCameras,
		phone.NumberOfCores,
		phone.Weight,
		phone.BatteryCapacity,
		phone.Cost,
	).Scan(&stored.ID)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("insert phone: %w", err)
	}
	return stored, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Phone, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+phoneColumns+` FROM phones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()
	return scanPhones(rows)
}

func (s *Postgres) FindBySerial(ctx context.Context, serialNumber string) (*models.Phone, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+phoneColumns+` FROM phones WHERE serial_number = $1`, serialNumber)
	phone, err := scanPhone(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find phone by serial: %w", err)
	}
	return phone, nil
}

// Filter returns records matching the typed value for the given field, ordered
// by (brand, model, cost) ascending. The field name comes from the static
// registry, never from raw client input, so it is safe to interpolate as a
// column name. network_technologies matches by substring containment against
// the canonical delimited string; a substring of one technology name can
// therefore match inside another (see the models package).
func (s *Postgres) Filter(ctx context.Context, field models.FieldSpec, value any) ([]*models.Phone, error) {
	var where string
	if field.Name == models.FieldNetworkTechnologies {
		where = `network_technologies LIKE '%' || $1 || '%'`
	} else {
		where = field.Name + ` = $1`
	}
	query := `SELECT ` + phoneColumns + ` FROM phones WHERE ` + where +
		` ORDER BY brand, model, cost`
	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("filter phones by %s: %w", field.Name, err)
	}
	defer rows.Close()
	return scanPhones(rows)
}

func (s *Postgres) Update(ctx context.Context, phone *models.Phone) (*models.Phone, error) {
	query := `
		UPDATE phones SET
			network_technologies = $1,
			number_of_cameras = $2,
			number_of_cores = $3,
			weight = $4,
			battery_capacity = $5,
			cost = $6
		WHERE serial_number = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		phone.CanonicalTechnologies(),
		phone.NumberOfCameras,
		phone.NumberOfCores,
		phone.Weight,
		phone.BatteryCapacity,
		phone.Cost,
		phone.SerialNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("update phone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update phone rows affected: %w", err)
	}
	if affected == 0 {
		return nil, sentinel.ErrNotFound
	}
	return phone.Clone(), nil
}

func (s *Postgres) Delete(ctx context.Context, serialNumber string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM phones WHERE serial_number = $1`, serialNumber)
	if err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete phone rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// duplicateKeyError maps a Postgres unique violation to the matching sentinel.
// Unrecognized unique violations still get a deterministic sentinel instead of
// falling through unclassified.
func duplicateKeyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "serial_number"):
		return sentinel.ErrDuplicateSerial
	case strings.Contains(pqErr.Constraint, "imei"):
		return sentinel.ErrDuplicateIMEI
	default:
		return sentinel.ErrConflict
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhone(row rowScanner) (*models.Phone, error) {
	var phone models.Phone
	var technologies string
	err := row.Scan(
		&phone.ID,
		&phone.SerialNumber,
		&phone.IMEI,
		&phone.Model,
		&phone.Brand,
		&technologies,
		&phone.NumberOfCameras,
		&phone.NumberOfCores,
		&phone.Weight,
		&phone.BatteryCapacity,
		&phone.Cost,
	)
	if err != nil {
		return nil, err
	}
	phone.NetworkTechnologies = models.SplitTechnologies(technologies)
	return &phone, nil
}

func scanPhones(rows *sql.Rows) ([]*models.Phone, error) {
	var phones []*models.Phone
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phones: %w", err)
	}
	return phones, nil
}
