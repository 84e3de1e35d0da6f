package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `
	o.id, o.outlet_visit_id, o.user_id, o.outlet_id, o.product_count, o.total_amount::float8,
	o.is_on_call, o.is_shipped, o.shipped_at, o.created_at, o.updated_at,
	ot.name, u.name`

const orderJoins = `
	JOIN outlets ot ON ot.id = o.outlet_id
	JOIN users u ON u.id = o.user_id`

type orderRepositoryImpl struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.OutletVisitID, &o.UserID, &o.OutletID, &o.ProductCount, &o.TotalAmount,
		&o.IsOnCall, &o.IsShipped, &o.ShippedAt, &o.CreatedAt, &o.UpdatedAt,
		&o.OutletName, &o.UserName,
	)
	return o, err
}

// Create implements order.OrderRepository. The order and its items are written in one statement.
func (r *orderRepositoryImpl) Create(ctx context.Context, newOrder order.Order) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	orderID, err := newID()
	if err != nil {
		return order.Order{}, err
	}

	n := len(newOrder.Items)
	itemIDs := make([]string, n)
	productIDs := make([]string, n)
	quantities := make([]int32, n)
	unitPrices := make([]float64, n)
	subtotals := make([]float64, n)
	for i, item := range newOrder.Items {
		if itemIDs[i], err = newID(); err != nil {
			return order.Order{}, err
		}
		productIDs[i] = item.ProductID
		quantities[i] = int32(item.Quantity)
		unitPrices[i] = item.UnitPrice
		subtotals[i] = item.Subtotal
	}

	query := `
		WITH o AS (
			INSERT INTO orders (id, outlet_visit_id, user_id, outlet_id, product_count, total_amount, is_on_call)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		), items AS (
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
			SELECT x.id, o.id, x.product_id, x.quantity, x.unit_price, x.subtotal
			FROM o, unnest($8::uuid[], $9::uuid[], $10::int[], $11::numeric[], $12::numeric[])
				AS x(id, product_id, quantity, unit_price, subtotal)
		)
		SELECT ` + orderColumns + ` FROM o` + orderJoins

	created, err := scanOrder(q.QueryRow(ctx, query,
		orderID, newOrder.OutletVisitID, newOrder.UserID, newOrder.OutletID,
		newOrder.ProductCount, newOrder.TotalAmount, newOrder.IsOnCall,
		itemIDs, productIDs, quantities, unitPrices, subtotals,
	))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	created.Items = make([]order.Item, n)
	for i, item := range newOrder.Items {
		item.ID = itemIDs[i]
		item.OrderID = created.ID
		created.Items[i] = item
	}
	return created, nil
}

// GetByID implements order.OrderRepository.
func (r *orderRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o`+orderJoins+` WHERE o.id = $1 AND o.user_id = $2`, id, userID))
	if err != nil {
		return order.Order{}, singleRowErr(err, "get order")
	}

	if o.Items, err = r.items(ctx, q, o.ID); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (r *orderRepositoryImpl) items(ctx context.Context, q database.Querier, orderID string) ([]order.Item, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price::float8, i.subtotal::float8, p.name
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY p.name, i.id`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := make([]order.Item, 0)
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal, &item.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List implements order.OrderRepository. Items are not loaded.
func (r *orderRepositoryImpl) List(ctx context.Context, userID string, filter order.OrderFilter) ([]order.Order, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"o.user_id = $1"}
	args := []interface{}{userID}
	if filter.OutletID != nil && *filter.OutletID != "" {
		args = append(args, *filter.OutletID)
		where = append(where, fmt.Sprintf("o.outlet_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM orders o WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders o %s
		WHERE %s
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $%d OFFSET $%d`, orderColumns, orderJoins, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, total, nil
}

// MarkShipped implements order.OrderRepository.
func (r *orderRepositoryImpl) MarkShipped(ctx context.Context, id string, userID string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH o AS (
			UPDATE orders
			SET is_shipped = TRUE, shipped_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND NOT is_shipped
			RETURNING *
		)
		SELECT ` + orderColumns + ` FROM o` + orderJoins

	o, err := scanOrder(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		return order.Order{}, singleRowErr(err, "mark order shipped")
	}

	if o.Items, err = r.items(ctx, q, o.ID); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
