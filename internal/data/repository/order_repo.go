package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"car-rental/internal/booking"
	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OrderFilter narrows administrative order listings.
type OrderFilter struct {
	Query     string
	Status    string
	CreatedBy *uuid.UUID
}

// CalendarQuery selects orders whose pickup and/or return slot intersects the
// half-open range [From, To). Kind empty means both kinds.
type CalendarQuery struct {
	From      time.Time
	To        time.Time
	Kind      booking.Kind
	Search    string
	VehicleID *uuid.UUID
	CreatedBy *uuid.UUID
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, filter OrderFilter) (int64, error)
	Update(ctx context.Context, order *entity.Order) error

	// Calendar queries
	FindCalendar(ctx context.Context, q CalendarQuery) ([]*entity.Order, error)
	FindByVehicleInWindow(ctx context.Context, vehicleID, excludeID uuid.UUID, from, to time.Time) ([]*entity.Order, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, kind booking.Kind, start, end *time.Time, updatedBy *string) (*entity.Order, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, ref, customer, customer_email, created_by, requested_vehicle, status,
	pickup_at, pickup_end_at, return_at, return_end_at,
	rental_days, booking_updated_by,
	pricing_total_usd, pricing_currency, pricing_days, pricing_price_per_day,
	subject, message, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	var pricingTotal *float64
	var pricingCurrency *string
	var pricingDays *int
	var pricingPerDay *float64

	err := row.Scan(
		&order.ID,
		&order.Ref,
		&order.Customer,
		&order.CustomerEmail,
		&order.CreatedBy,
		&order.VehicleID,
		&order.Status,
		&order.PickupAt,
		&order.PickupEndAt,
		&order.ReturnAt,
		&order.ReturnEndAt,
		&order.RentalDays,
		&order.BookingUpdatedBy,
		&pricingTotal,
		&pricingCurrency,
		&pricingDays,
		&pricingPerDay,
		&order.Subject,
		&order.Message,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pricingTotal != nil {
		currency := "USD"
		if pricingCurrency != nil {
			currency = *pricingCurrency
		}
		order.Pricing = &entity.Pricing{
			TotalUSD:    *pricingTotal,
			Currency:    currency,
			Days:        pricingDays,
			PricePerDay: pricingPerDay,
		}
	}

	return &order, nil
}

func pricingFields(order *entity.Order) (total *float64, currency *string, days *int, perDay *float64) {
	if order.Pricing == nil {
		return nil, nil, nil, nil
	}
	t := order.Pricing.TotalUSD
	c := order.Pricing.Currency
	return &t, &c, order.Pricing.Days, order.Pricing.PricePerDay
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	total, currency, days, perDay := pricingFields(order)

	query := `
		INSERT INTO orders (id, ref, customer, customer_email, created_by, requested_vehicle, status,
			pickup_at, pickup_end_at, return_at, return_end_at,
			rental_days, booking_updated_by,
			pricing_total_usd, pricing_currency, pricing_days, pricing_price_per_day,
			subject, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID, order.Ref, order.Customer, order.CustomerEmail, order.CreatedBy, order.VehicleID, order.Status,
		order.PickupAt, order.PickupEndAt, order.ReturnAt, order.ReturnEndAt,
		order.RentalDays, order.BookingUpdatedBy,
		total, currency, days, perDay,
		order.Subject, order.Message, order.CreatedAt, order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("ref", order.Ref),
		)
		return fmt.Errorf("create order %s: %w", order.Ref, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func buildOrderWhere(filter OrderFilter) (string, []any) {
	var clauses []string
	var args []any

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if filter.Status != "" && filter.Status != "all" {
		clauses = append(clauses, "status = "+next())
		args = append(args, filter.Status)
	}
	if filter.CreatedBy != nil {
		clauses = append(clauses, "created_by = "+next())
		args = append(args, *filter.CreatedBy)
	}
	if filter.Query != "" {
		p := next()
		clauses = append(clauses,
			"(ref ILIKE "+p+" OR customer ILIKE "+p+" OR customer_email ILIKE "+p+")")
		args = append(args, "%"+filter.Query+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *orderRepository) FindAll(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error) {
	where, args := buildOrderWhere(filter)
	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter OrderFilter) (int64, error) {
	where, args := buildOrderWhere(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	total, currency, days, perDay := pricingFields(order)

	query := `
		UPDATE orders
		SET ref = $2, customer = $3, customer_email = $4, created_by = $5, requested_vehicle = $6,
			status = $7, pickup_at = $8, pickup_end_at = $9, return_at = $10, return_end_at = $11,
			rental_days = $12, booking_updated_by = $13,
			pricing_total_usd = $14, pricing_currency = $15, pricing_days = $16, pricing_price_per_day = $17,
			subject = $18, message = $19, updated_at = $20
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		order.ID, order.Ref, order.Customer, order.CustomerEmail, order.CreatedBy, order.VehicleID,
		order.Status, order.PickupAt, order.PickupEndAt, order.ReturnAt, order.ReturnEndAt,
		order.RentalDays, order.BookingUpdatedBy,
		total, currency, days, perDay,
		order.Subject, order.Message, order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return fmt.Errorf("update order %s: %w", order.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", order.ID.String())
	}

	return nil
}

// slotOverlapClause renders the canonical half-open overlap predicate for one
// slot kind against the [$from, $to) placeholders. The effective end defaults
// to start + 60 minutes when the stored end is null or not after the start,
// mirroring the shaping rule in the booking package.
func slotOverlapClause(kind booking.Kind, fromPh, toPh string) string {
	start := "pickup_at"
	end := "pickup_end_at"
	if kind == booking.KindReturn {
		start = "return_at"
		end = "return_end_at"
	}

	effectiveEnd := fmt.Sprintf(
		"(CASE WHEN %s > %s THEN %s ELSE %s + interval '60 minutes' END)",
		end, start, end, start)

	return fmt.Sprintf("(%s IS NOT NULL AND %s < %s AND %s < %s)",
		start, start, toPh, fromPh, effectiveEnd)
}

func (r *orderRepository) FindCalendar(ctx context.Context, q CalendarQuery) ([]*entity.Order, error) {
	var clauses []string
	var args []any

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if q.VehicleID != nil {
		clauses = append(clauses, "requested_vehicle = "+next())
		args = append(args, *q.VehicleID)
	}
	if q.CreatedBy != nil {
		clauses = append(clauses, "created_by = "+next())
		args = append(args, *q.CreatedBy)
	}
	if q.Search != "" {
		p := next()
		clauses = append(clauses,
			"(ref ILIKE "+p+" OR customer ILIKE "+p+" OR customer_email ILIKE "+p+")")
		args = append(args, "%"+q.Search+"%")
	}

	fromPh := next()
	args = append(args, q.From)
	toPh := next()
	args = append(args, q.To)

	var rangeOr []string
	if q.Kind == "" || q.Kind == booking.KindPickup {
		rangeOr = append(rangeOr, slotOverlapClause(booking.KindPickup, fromPh, toPh))
	}
	if q.Kind == "" || q.Kind == booking.KindReturn {
		rangeOr = append(rangeOr, slotOverlapClause(booking.KindReturn, fromPh, toPh))
	}
	clauses = append(clauses, "("+strings.Join(rangeOr, " OR ")+")")

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY pickup_at ASC NULLS LAST, return_at ASC NULLS LAST`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query calendar orders",
			zap.Error(err),
			zap.Time("from", q.From),
			zap.Time("to", q.To),
		)
		return nil, fmt.Errorf("query calendar orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// FindByVehicleInWindow loads the conflict-scan candidates: other orders on
// the same vehicle whose pickup or return slot overlaps the padded window
// [from, to). Overlap is computed against the effective slot end, so a slot
// longer than the padding that began well before the window is still caught.
func (r *orderRepository) FindByVehicleInWindow(ctx context.Context, vehicleID, excludeID uuid.UUID, from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE requested_vehicle = $1
			AND id <> $2
			AND (` + slotOverlapClause(booking.KindPickup, "$3", "$4") + ` OR ` + slotOverlapClause(booking.KindReturn, "$3", "$4") + `)
	`

	rows, err := r.db.Query(ctx, query, vehicleID, excludeID, from, to)
	if err != nil {
		r.log.Error("Failed to find orders by vehicle in window",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("find orders by vehicle %s in window: %w", vehicleID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// UpdateSchedule persists one slot of one order as a single document write.
// Passing nil start and end clears the slot. Returns the updated order, or
// nil when the order does not exist.
func (r *orderRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, kind booking.Kind, start, end *time.Time, updatedBy *string) (*entity.Order, error) {
	startCol := "pickup_at"
	endCol := "pickup_end_at"
	if kind == booking.KindReturn {
		startCol = "return_at"
		endCol = "return_end_at"
	}

	query := fmt.Sprintf(`
		UPDATE orders
		SET %s = $2, %s = $3, booking_updated_by = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, startCol, endCol)

	order, err := scanOrder(r.db.QueryRow(ctx, query, id, start, end, updatedBy))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update order schedule",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("update order %s schedule: %w", id.String(), err)
	}

	return order, nil
}
