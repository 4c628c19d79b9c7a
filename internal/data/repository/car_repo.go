package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CarFilter is a composable predicate for fleet listings. Nil pointer fields
// mean "no constraint".
type CarFilter struct {
	Query    string
	Type     string
	Seats    *int
	Featured *bool
	Active   *bool

	SortField string
	SortDesc  bool
}

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindActiveBySlug(ctx context.Context, slug string) (*entity.Car, error)
	FindAll(ctx context.Context, filter CarFilter, limit, offset int) ([]*entity.Car, error)
	Count(ctx context.Context, filter CarFilter) (int64, error)
	DistinctTypes(ctx context.Context) ([]string, error)
	DistinctSeats(ctx context.Context) ([]int, error)
	FindCandidates(ctx context.Context, excludeID uuid.UUID, carType string, limit int) ([]*entity.Car, error)
	FindFeatured(ctx context.Context, excludeID uuid.UUID, limit int) ([]*entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type carRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCarRepository(db database.PgxIface, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

const carColumns = `id, make, model, trim, type, slug, badge, is_featured, is_active,
	price_per_day, currency, thumbnail_url, gallery,
	chip_seats, chip_horsepower, chip_transmission, chip_fuel,
	spec_acceleration, spec_drivetrain, spec_transmission_detail, spec_engine,
	created_at, updated_at`

func scanCar(row pgx.Row) (*entity.Car, error) {
	var car entity.Car
	var gallery []byte

	err := row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Trim,
		&car.Type,
		&car.Slug,
		&car.Badge,
		&car.IsFeatured,
		&car.IsActive,
		&car.PricePerDay,
		&car.Currency,
		&car.ThumbnailURL,
		&gallery,
		&car.Chips.Seats,
		&car.Chips.Horsepower,
		&car.Chips.Transmission,
		&car.Chips.Fuel,
		&car.Specs.Acceleration0To100Sec,
		&car.Specs.Drivetrain,
		&car.Specs.TransmissionDetail,
		&car.Specs.Engine,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &car.Gallery); err != nil {
			return nil, fmt.Errorf("decode gallery: %w", err)
		}
	}

	return &car, nil
}

// buildCarWhere assembles the WHERE clause from independent sub-predicates.
func buildCarWhere(filter CarFilter) (string, []any) {
	var clauses []string
	var args []any

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if filter.Active != nil {
		clauses = append(clauses, "is_active = "+next())
		args = append(args, *filter.Active)
	}
	if filter.Featured != nil {
		clauses = append(clauses, "is_featured = "+next())
		args = append(args, *filter.Featured)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type ILIKE "+next())
		args = append(args, filter.Type)
	}
	if filter.Seats != nil {
		clauses = append(clauses, "chip_seats = "+next())
		args = append(args, *filter.Seats)
	}
	if filter.Query != "" {
		p := next()
		clauses = append(clauses,
			"(make ILIKE "+p+" OR model ILIKE "+p+" OR trim ILIKE "+p+" OR badge ILIKE "+p+" OR type ILIKE "+p+")")
		args = append(args, "%"+filter.Query+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var carSortFields = map[string]string{
	"created_at":    "created_at",
	"price_per_day": "price_per_day",
	"make":          "make",
}

func carOrderBy(filter CarFilter) string {
	field, ok := carSortFields[filter.SortField]
	if !ok {
		field = "created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", field, dir)
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	gallery, err := json.Marshal(car.Gallery)
	if err != nil {
		return fmt.Errorf("encode gallery: %w", err)
	}

	query := `
		INSERT INTO cars (id, make, model, trim, type, slug, badge, is_featured, is_active,
			price_per_day, currency, thumbnail_url, gallery,
			chip_seats, chip_horsepower, chip_transmission, chip_fuel,
			spec_acceleration, spec_drivetrain, spec_transmission_detail, spec_engine,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err = r.db.Exec(ctx, query,
		car.ID, car.Make, car.Model, car.Trim, car.Type, car.Slug, car.Badge,
		car.IsFeatured, car.IsActive, car.PricePerDay, car.Currency, car.ThumbnailURL, gallery,
		car.Chips.Seats, car.Chips.Horsepower, car.Chips.Transmission, car.Chips.Fuel,
		car.Specs.Acceleration0To100Sec, car.Specs.Drivetrain, car.Specs.TransmissionDetail, car.Specs.Engine,
		car.CreatedAt, car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create car",
			zap.Error(err),
			zap.String("slug", car.Slug),
		)
		return fmt.Errorf("create car %s: %w", car.Slug, err)
	}

	return nil
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return nil, fmt.Errorf("find car by ID %s: %w", id.String(), err)
	}

	return car, nil
}

func (r *carRepository) FindActiveBySlug(ctx context.Context, slug string) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE slug = $1 AND is_active = TRUE`

	car, err := scanCar(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find car by slug %s: %w", slug, err)
	}

	return car, nil
}

func (r *carRepository) FindAll(ctx context.Context, filter CarFilter, limit, offset int) ([]*entity.Car, error) {
	where, args := buildCarWhere(filter)
	query := `SELECT ` + carColumns + ` FROM cars` + where + carOrderBy(filter)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list cars", zap.Error(err))
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

func (r *carRepository) Count(ctx context.Context, filter CarFilter) (int64, error) {
	where, args := buildCarWhere(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count cars", zap.Error(err))
		return 0, fmt.Errorf("count cars: %w", err)
	}

	return count, nil
}

func (r *carRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT type FROM cars
		WHERE is_active = TRUE AND type <> ''
		ORDER BY type
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get distinct car types", zap.Error(err))
		return nil, fmt.Errorf("distinct car types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan car type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

func (r *carRepository) DistinctSeats(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT chip_seats FROM cars
		WHERE is_active = TRUE AND chip_seats > 0
		ORDER BY chip_seats
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get distinct seat counts", zap.Error(err))
		return nil, fmt.Errorf("distinct seat counts: %w", err)
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan seat count: %w", err)
		}
		seats = append(seats, s)
	}

	return seats, nil
}

// FindCandidates returns active cars for recommendation scoring, optionally
// restricted to one body type.
func (r *carRepository) FindCandidates(ctx context.Context, excludeID uuid.UUID, carType string, limit int) ([]*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE is_active = TRUE AND id <> $1`
	args := []any{excludeID}

	if carType != "" {
		query += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, carType)
	}
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find recommendation candidates", zap.Error(err))
		return nil, fmt.Errorf("find recommendation candidates: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

func (r *carRepository) FindFeatured(ctx context.Context, excludeID uuid.UUID, limit int) ([]*entity.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		WHERE is_active = TRUE AND is_featured = TRUE AND id <> $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, excludeID, limit)
	if err != nil {
		r.log.Error("Failed to find featured cars", zap.Error(err))
		return nil, fmt.Errorf("find featured cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	gallery, err := json.Marshal(car.Gallery)
	if err != nil {
		return fmt.Errorf("encode gallery: %w", err)
	}

	query := `
		UPDATE cars
		SET make = $2, model = $3, trim = $4, type = $5, slug = $6, badge = $7,
			is_featured = $8, is_active = $9, price_per_day = $10, currency = $11,
			thumbnail_url = $12, gallery = $13,
			chip_seats = $14, chip_horsepower = $15, chip_transmission = $16, chip_fuel = $17,
			spec_acceleration = $18, spec_drivetrain = $19, spec_transmission_detail = $20, spec_engine = $21,
			updated_at = $22
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		car.ID, car.Make, car.Model, car.Trim, car.Type, car.Slug, car.Badge,
		car.IsFeatured, car.IsActive, car.PricePerDay, car.Currency, car.ThumbnailURL, gallery,
		car.Chips.Seats, car.Chips.Horsepower, car.Chips.Transmission, car.Chips.Fuel,
		car.Specs.Acceleration0To100Sec, car.Specs.Drivetrain, car.Specs.TransmissionDetail, car.Specs.Engine,
		car.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update car",
			zap.Error(err),
			zap.String("car_id", car.ID.String()),
		)
		return fmt.Errorf("update car %s: %w", car.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", car.ID.String())
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cars WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete car",
			zap.Error(err),
			zap.String("car_id", id.String()),
		)
		return fmt.Errorf("delete car %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("car %s not found", id.String())
	}

	r.log.Info("Car deleted", zap.String("car_id", id.String()))
	return nil
}
