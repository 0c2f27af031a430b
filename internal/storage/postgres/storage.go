package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; tests substitute a
// pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type groupRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Groups() repository.GroupRepository {
	return &groupRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            business_name TEXT NOT NULL DEFAULT '',
            business_type TEXT NOT NULL DEFAULT '',
            longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
            latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
            address TEXT NOT NULL DEFAULT '',
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            rating_count INTEGER NOT NULL DEFAULT 0,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_groups (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            created_by UUID NOT NULL REFERENCES users(id),
            total_amount BIGINT NOT NULL,
            total_paid_amount BIGINT NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'active',
            delivery_date TIMESTAMPTZ NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS group_members (
            group_id UUID NOT NULL REFERENCES order_groups(id),
            vendor_id UUID NOT NULL REFERENCES users(id),
            position INTEGER NOT NULL,
            share_percentage DOUBLE PRECISION NOT NULL,
            share_amount BIGINT NOT NULL,
            paid_amount BIGINT NOT NULL DEFAULT 0,
            PRIMARY KEY (group_id, vendor_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            group_id UUID REFERENCES order_groups(id),
            vendor_id UUID NOT NULL REFERENCES users(id),
            supplier_id UUID NOT NULL REFERENCES users(id),
            items JSONB NOT NULL,
            total_amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            delivery_date TIMESTAMPTZ NOT NULL,
            delivery_address TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id UUID PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            vendor_id UUID NOT NULL,
            transaction_id TEXT UNIQUE NOT NULL,
            amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_vendor ON orders(vendor_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_supplier ON orders(supplier_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_group_members_vendor ON group_members(vendor_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, phone, role, business_name, business_type, longitude, latitude, address)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role,
		user.BusinessName, user.BusinessType, user.Location.Longitude, user.Location.Latitude, user.Address,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

const userColumns = `id, name, email, password_hash, phone, role, business_name, business_type, longitude, latitude, address, rating, rating_count, verified, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role,
		&u.BusinessName, &u.BusinessType, &u.Location.Longitude, &u.Location.Latitude,
		&u.Address, &u.Rating, &u.RatingCount, &u.Verified, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) ListSuppliers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role=$1`
	rows, err := r.storage.pool.Query(ctx, query, model.RoleSupplier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role,
			&u.BusinessName, &u.BusinessType, &u.Location.Longitude, &u.Location.Latitude,
			&u.Address, &u.Rating, &u.RatingCount, &u.Verified, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) ApplyRating(ctx context.Context, supplierID uuid.UUID, rating float64) (float64, int, error) {
	// Running average folded in a single statement so concurrent ratings
	// cannot lose updates.
	const query = `UPDATE users
                   SET rating = (rating * rating_count + $2) / (rating_count + 1),
                       rating_count = rating_count + 1
                   WHERE id=$1 AND role=$3
                   RETURNING rating, rating_count`
	var newRating float64
	var count int
	err := r.storage.pool.QueryRow(ctx, query, supplierID, rating, model.RoleSupplier).Scan(&newRating, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domainErrors.ErrNotFound
		}
		return 0, 0, err
	}
	return newRating, count, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, group_id, vendor_id, supplier_id, items, total_amount, status, payment_status, delivery_date, delivery_address, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var items []byte
	err := row.Scan(&o.ID, &o.GroupID, &o.VendorID, &o.SupplierID, &items, &o.TotalAmount,
		&o.Status, &o.PaymentStatus, &o.DeliveryDate, &o.DeliveryAddress, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	const query = `INSERT INTO orders (id, group_id, vendor_id, supplier_id, items, total_amount, status, payment_status, delivery_date, delivery_address, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.GroupID, order.VendorID, order.SupplierID, items, order.TotalAmount,
		order.Status, order.PaymentStatus, order.DeliveryDate, order.DeliveryAddress, order.Notes,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func partyColumn(role model.Role) (string, error) {
	switch role {
	case model.RoleVendor:
		return "vendor_id", nil
	case model.RoleSupplier:
		return "supplier_id", nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}

func (r *orderRepository) ListByParty(ctx context.Context, userID uuid.UUID, role model.Role, filter repository.OrderFilter) ([]model.Order, int, error) {
	column, err := partyColumn(role)
	if err != nil {
		return nil, 0, err
	}

	where := ` WHERE ` + column + `=$1`
	args := []any{userID}
	if filter.Status != nil {
		where += ` AND status=$2`
		args = append(args, *filter.Status)
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		var o model.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.GroupID, &o.VendorID, &o.SupplierID, &items, &o.TotalAmount,
			&o.Status, &o.PaymentStatus, &o.DeliveryDate, &o.DeliveryAddress, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, notes *string) error {
	const query = `UPDATE orders SET status=$1, notes=COALESCE($2, notes), updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Update(ctx context.Context, id uuid.UUID, patch repository.OrderPatch) error {
	const query = `UPDATE orders
                   SET delivery_date=COALESCE($1, delivery_date),
                       delivery_address=COALESCE($2, delivery_address),
                       notes=COALESCE($3, notes),
                       updated_at=NOW()
                   WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, patch.DeliveryDate, patch.DeliveryAddress, patch.Notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	const query = `UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) TotalPaidByParty(ctx context.Context, userID uuid.UUID, role model.Role) (model.Money, error) {
	column, err := partyColumn(role)
	if err != nil {
		return 0, err
	}
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE ` + column + `=$1 AND payment_status=$2`
	var total model.Money
	if err := r.storage.pool.QueryRow(ctx, query, userID, model.PaymentStatusPaid).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) Dashboard(ctx context.Context, supplierID uuid.UUID, monthStart, monthEnd time.Time) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	const monthlyQuery = `SELECT COUNT(*) FROM orders WHERE supplier_id=$1 AND created_at >= $2 AND created_at < $3`
	if err := r.storage.pool.QueryRow(ctx, monthlyQuery, supplierID, monthStart, monthEnd).Scan(&stats.MonthlyOrders); err != nil {
		return nil, err
	}

	const revenueQuery = `SELECT COALESCE(SUM(total_amount), 0) FROM orders
                          WHERE supplier_id=$1 AND status=$2 AND created_at >= $3 AND created_at < $4`
	if err := r.storage.pool.QueryRow(ctx, revenueQuery, supplierID, model.OrderStatusDelivered, monthStart, monthEnd).Scan(&stats.MonthlyRevenue); err != nil {
		return nil, err
	}

	const pendingQuery = `SELECT COUNT(*) FROM orders WHERE supplier_id=$1 AND status=$2`
	if err := r.storage.pool.QueryRow(ctx, pendingQuery, supplierID, model.OrderStatusPending).Scan(&stats.PendingOrders); err != nil {
		return nil, err
	}

	recentQuery := `SELECT ` + orderColumns + ` FROM orders WHERE supplier_id=$1 ORDER BY created_at DESC LIMIT 5`
	rows, err := r.storage.pool.Query(ctx, recentQuery, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.RecentOrders, err = collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// --- GroupRepository implementation ---

func (r *groupRepository) Create(ctx context.Context, group *model.OrderGroup) (*model.OrderGroup, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertGroup = `INSERT INTO order_groups (id, name, created_by, total_amount, status, delivery_date, description)
                             VALUES ($1, $2, $3, $4, $5, $6, $7)
                             RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, insertGroup,
			group.ID, group.Name, group.CreatedBy, group.TotalAmount, group.Status,
			group.DeliveryDate, group.Description,
		).Scan(&group.CreatedAt, &group.UpdatedAt); err != nil {
			return err
		}

		const insertMember = `INSERT INTO group_members (group_id, vendor_id, position, share_percentage, share_amount, paid_amount)
                              VALUES ($1, $2, $3, $4, $5, $6)`
		for i, m := range group.Members {
			if _, err := tx.Exec(ctx, insertMember,
				group.ID, m.VendorID, i, m.SharePercentage, m.ShareAmount, m.PaidAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

const groupColumns = `id, name, created_by, total_amount, total_paid_amount, status, delivery_date, description, created_at, updated_at`

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM order_groups WHERE id=$1`
	var g model.OrderGroup
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedBy,
		&g.TotalAmount, &g.TotalPaidAmount, &g.Status, &g.DeliveryDate, &g.Description,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	g.Members, err = r.loadMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) loadMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	const query = `SELECT vendor_id, share_percentage, share_amount, paid_amount
                   FROM group_members WHERE group_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.GroupMember
	for rows.Next() {
		var m model.GroupMember
		if err := rows.Scan(&m.VendorID, &m.SharePercentage, &m.ShareAmount, &m.PaidAmount); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error) {
	query := `SELECT DISTINCT g.id, g.name, g.created_by, g.total_amount, g.total_paid_amount, g.status, g.delivery_date, g.description, g.created_at, g.updated_at
              FROM order_groups g
              LEFT JOIN group_members m ON m.group_id = g.id
              WHERE g.created_by=$1 OR m.vendor_id=$1
              ORDER BY g.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.OrderGroup
	for rows.Next() {
		var g model.OrderGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.TotalAmount, &g.TotalPaidAmount,
			&g.Status, &g.DeliveryDate, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		groups[i].Members, err = r.loadMembers(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *groupRepository) AddPayment(ctx context.Context, groupID, vendorID uuid.UUID, amount model.Money) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Both counters move by in-place increments so concurrent payments
		// against the same group cannot lose updates.
		const updateMember = `UPDATE group_members SET paid_amount = paid_amount + $3
                              WHERE group_id=$1 AND vendor_id=$2`
		tag, err := tx.Exec(ctx, updateMember, groupID, vendorID, amount)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotGroupMember
		}

		const updateGroup = `UPDATE order_groups SET total_paid_amount = total_paid_amount + $2, updated_at=NOW()
                             WHERE id=$1`
		tag, err = tx.Exec(ctx, updateGroup, groupID, amount)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *groupRepository) CompleteSettled(ctx context.Context, limit int) ([]model.OrderGroup, error) {
	var groups []model.OrderGroup
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		selectQuery := `SELECT ` + groupColumns + ` FROM order_groups
                        WHERE status=$1 AND total_paid_amount >= total_amount
                        ORDER BY updated_at
                        LIMIT $2
                        FOR UPDATE SKIP LOCKED`
		rows, err := tx.Query(ctx, selectQuery, model.GroupStatusActive, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var g model.OrderGroup
			if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.TotalAmount, &g.TotalPaidAmount,
				&g.Status, &g.DeliveryDate, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
				return err
			}
			groups = append(groups, g)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for i := range groups {
			if _, err := tx.Exec(ctx, `UPDATE order_groups SET status=$1, updated_at=NOW() WHERE id=$2`,
				model.GroupStatusCompleted, groups[i].ID); err != nil {
				return err
			}
			groups[i].Status = model.GroupStatusCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := r.loadMembers(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Members = members
	}
	return groups, nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (id, order_id, vendor_id, transaction_id, amount, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		payment.ID, payment.OrderID, payment.VendorID, payment.TransactionID,
		payment.Amount, payment.Status,
	).Scan(&payment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return payment, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
