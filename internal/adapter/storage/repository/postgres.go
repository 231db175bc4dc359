package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/eshevtsov/washpoint/internal/adapter/storage"
	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "order_no", "user_id", "merchant_id", "device_id",
	"amount", "paid_amount", "balance_used", "gift_balance_used", "refund_amount",
	"duration_minutes", "actual_minutes", "status", "payment_method",
	"gateway_txn_id", "manual_review", "remark",
	"created_at", "expire_at", "paid_at", "start_at", "end_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID, &order.OrderNo, &order.UserID, &order.MerchantID, &order.DeviceID,
		&order.Amount, &order.PaidAmount, &order.BalanceUsed, &order.GiftBalanceUsed, &order.RefundAmount,
		&order.DurationMinutes, &order.ActualMinutes, &order.Status, &order.PaymentMethod,
		&order.GatewayTxnID, &order.ManualReview, &order.Remark,
		&order.CreatedAt, &order.ExpireAt, &order.PaidAt, &order.StartAt, &order.EndAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "orders_active_user_idx", "orders_active_device_idx":
			return domain.ErrActiveOrderExists
		}
		return domain.ErrConflictingData
	}
	return err
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Insert("orders").
		Columns("order_no", "user_id", "merchant_id", "device_id",
			"amount", "duration_minutes", "status", "payment_method", "remark",
			"created_at", "expire_at", "updated_at").
		Values(order.OrderNo, order.UserID, order.MerchantID, order.DeviceID,
			order.Amount, order.DurationMinutes, order.Status, order.PaymentMethod, order.Remark,
			order.CreatedAt, order.ExpireAt, order.UpdatedAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&order.ID)
	if err != nil {
		return nil, translateUnique(err)
	}
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ReadOrderByNo(ctx context.Context, orderNo string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_no": orderNo})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	return r.listOrders(ctx, statement)
}

// UpdateOrderGuarded writes the order only while its stored status is one
// of from. Losing the compare-and-set surfaces as ErrStatusConflict.
func (r *Repository) UpdateOrderGuarded(ctx context.Context, order *domain.Order, from []domain.OrderStatus) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("amount", order.Amount).
		Set("paid_amount", order.PaidAmount).
		Set("balance_used", order.BalanceUsed).
		Set("gift_balance_used", order.GiftBalanceUsed).
		Set("refund_amount", order.RefundAmount).
		Set("actual_minutes", order.ActualMinutes).
		Set("status", order.Status).
		Set("gateway_txn_id", order.GatewayTxnID).
		Set("manual_review", order.ManualReview).
		Set("remark", order.Remark).
		Set("paid_at", order.PaidAt).
		Set("start_at", order.StartAt).
		Set("end_at", order.EndAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": order.ID}).
		Where(sq.Eq{"status": statusStrings(from)})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, translateUnique(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrStatusConflict
	}
	order.UpdatedAt = time.Now()
	return order, nil
}

var stalledRefColumns = map[domain.StalledRef]string{
	domain.StalledByCreatedAt: "created_at",
	domain.StalledByPaidAt:    "paid_at",
	domain.StalledByStartAt:   "start_at",
	domain.StalledByUpdatedAt: "updated_at",
}

func (r *Repository) ListStalledOrders(ctx context.Context, status domain.OrderStatus,
	ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
	column, ok := stalledRefColumns[ref]
	if !ok {
		return nil, domain.ErrBadRequest
	}

	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"status": status}).
		Where(sq.Lt{column: before}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	return r.listOrders(ctx, statement)
}

func (r *Repository) ListOverdueUsage(ctx context.Context, now time.Time, limit int) ([]*domain.Order, error) {
	columns := make([]string, 0, len(orderColumns))
	for _, c := range orderColumns {
		columns = append(columns, "o."+c)
	}

	statement := r.db.QueryBuilder.
		Select(columns...).
		From("orders o").
		Join("devices d ON d.id = o.device_id").
		Where(sq.Eq{"o.status": domain.OrderStatusInUse}).
		Where(sq.Expr("o.start_at + make_interval(mins => d.max_usage_minutes) < ?", now)).
		OrderBy("o.created_at ASC").
		Limit(uint64(limit))

	return r.listOrders(ctx, statement)
}

func (r *Repository) listOrders(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateBalanceByOrder locks the order and the ledger row, runs fn over
// both and persists them in one transaction. ErrStatusConflict is
// returned without writes when the order left the expected statuses.
func (r *Repository) UpdateBalanceByOrder(ctx context.Context, userID, orderID uint64,
	from []domain.OrderStatus, fn port.UpdateBalanceFn) (*domain.Balance, error) {
	var balance *domain.Balance

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Select(orderColumns...).
			From("orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		order, err := scanOrder(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return err
		}

		allowed := false
		for _, s := range from {
			if order.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.ErrStatusConflict
		}

		balanceSt := r.db.QueryBuilder.
			Select("user_id", "balance", "gift").
			From("balances").
			Where(sq.Eq{"user_id": userID}).
			Suffix("FOR UPDATE")

		sql, args, err = balanceSt.ToSql()
		if err != nil {
			return err
		}
		b := domain.Balance{}
		err = tx.QueryRow(ctx, sql, args...).Scan(&b.UserID, &b.Balance, &b.Gift)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrDataNotFound
			}
			return err
		}

		if err := fn(&b, order); err != nil {
			return err
		}

		updBalance := r.db.QueryBuilder.Update("balances").
			Set("balance", b.Balance).
			Set("gift", b.Gift).
			Where(sq.Eq{"user_id": userID})
		sql, args, err = updBalance.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		updOrder := r.db.QueryBuilder.Update("orders").
			Set("amount", order.Amount).
			Set("paid_amount", order.PaidAmount).
			Set("balance_used", order.BalanceUsed).
			Set("gift_balance_used", order.GiftBalanceUsed).
			Set("refund_amount", order.RefundAmount).
			Set("status", order.Status).
			Set("remark", order.Remark).
			Set("paid_at", order.PaidAt).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": orderID})
		sql, args, err = updOrder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		balance = &b
		return nil
	})
	if err != nil {
		return nil, translateUnique(err)
	}

	return balance, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		userSt := r.db.QueryBuilder.
			Insert("users").
			Columns("login", "password").
			Values(user.Login, user.Password).
			Suffix("RETURNING id")

		sql, args, err := userSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&(user.ID))
		if err != nil {
			return err
		}

		balanceSt := r.db.QueryBuilder.
			Insert("balances").
			Columns("user_id", "balance", "gift").
			Values(user.ID, 0, 0)

		sql, args, err = balanceSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "login", "password").
		From("users").
		Where(sq.Eq{"login": login})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) ReadBalanceByUserID(ctx context.Context, userID uint64) (*domain.Balance, error) {
	statement := r.db.QueryBuilder.
		Select("user_id", "balance", "gift").
		From("balances").
		Where(sq.Eq{"user_id": userID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	balance := domain.Balance{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&balance.UserID, &balance.Balance, &balance.Gift)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &balance, nil
}

var deviceColumns = []string{
	"id", "merchant_id", "devid", "name",
	"price_per_minute", "min_amount", "max_usage_minutes",
	"status", "signal", "battery", "error_code",
	"total_uses", "total_minutes", "total_revenue", "updated_at",
}

func scanDevice(row rowScanner) (*domain.Device, error) {
	device := domain.Device{}
	err := row.Scan(
		&device.ID, &device.MerchantID, &device.DevID, &device.Name,
		&device.PricePerMinute, &device.MinAmount, &device.MaxUsageMinutes,
		&device.Status, &device.Signal, &device.Battery, &device.ErrorCode,
		&device.TotalUses, &device.TotalMinutes, &device.TotalRevenue, &device.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *Repository) ReadDevice(ctx context.Context, deviceID uint64) (*domain.Device, error) {
	statement := r.db.QueryBuilder.
		Select(deviceColumns...).
		From("devices").
		Where(sq.Eq{"id": deviceID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return scanDevice(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ReadDeviceByDevID(ctx context.Context, devID string) (*domain.Device, error) {
	statement := r.db.QueryBuilder.
		Select(deviceColumns...).
		From("devices").
		Where(sq.Eq{"devid": devID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return scanDevice(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) UpdateDeviceReport(ctx context.Context, report *domain.DeviceReport) error {
	statement := r.db.QueryBuilder.Update("devices").
		Set("status", report.Status).
		Set("signal", report.Signal).
		Set("battery", report.Battery).
		Set("error_code", report.ErrorCode).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"devid": report.DevID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *Repository) AddDeviceUsage(ctx context.Context, deviceID uint64, minutes int, revenue int64) error {
	statement := r.db.QueryBuilder.Update("devices").
		Set("total_uses", sq.Expr("total_uses + 1")).
		Set("total_minutes", sq.Expr("total_minutes + ?", minutes)).
		Set("total_revenue", sq.Expr("total_revenue + ?", revenue)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": deviceID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) ReadMerchant(ctx context.Context, merchantID uint64) (*domain.Merchant, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "approved", "commission_bps", "revenue").
		From("merchants").
		Where(sq.Eq{"id": merchantID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	merchant := domain.Merchant{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&merchant.ID, &merchant.Name, &merchant.Approved,
		&merchant.CommissionBps, &merchant.Revenue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &merchant, nil
}

func (r *Repository) AddMerchantRevenue(ctx context.Context, merchantID uint64, amount int64) error {
	statement := r.db.QueryBuilder.Update("merchants").
		Set("revenue", sq.Expr("revenue + ?", amount)).
		Where(sq.Eq{"id": merchantID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) ListRefundRules(ctx context.Context) ([]*domain.RefundRule, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "priority", "enabled", "status", "since_field",
			"threshold_seconds", "payment_method", "min_amount", "max_amount",
			"action", "percent").
		From("refund_rules").
		OrderBy("priority ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.RefundRule, 0)
	for rows.Next() {
		rule := domain.RefundRule{}
		err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Priority, &rule.Enabled, &rule.Status,
			&rule.SinceField, &rule.ThresholdSeconds, &rule.PaymentMethod,
			&rule.MinAmount, &rule.MaxAmount, &rule.Action, &rule.Percent,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
