package storage

// DDL for the persisted schema. Unique constraints carry the upsert
// semantics: mobile_number for customers, order_id for facts, and
// (order_id, sku_id) for items.
const (
	createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id   TEXT,
	customer_name TEXT,
	mobile_number INTEGER NOT NULL UNIQUE,
	region        TEXT
);`

	createOrdersFactTable = `
CREATE TABLE IF NOT EXISTS orders_fact (
	order_id            TEXT NOT NULL UNIQUE,
	mobile_number       INTEGER NOT NULL,
	order_date_time_utc TEXT NOT NULL,
	total_amount        REAL NOT NULL
);`

	createOrderItemsTable = `
CREATE TABLE IF NOT EXISTS order_items (
	order_id  TEXT NOT NULL,
	sku_id    TEXT NOT NULL,
	sku_count INTEGER NOT NULL,
	UNIQUE (order_id, sku_id)
);`
)

const (
	upsertCustomer = `
INSERT INTO customers (customer_id, customer_name, mobile_number, region)
VALUES (?, ?, ?, ?)
ON CONFLICT (mobile_number) DO UPDATE SET
	customer_id   = excluded.customer_id,
	customer_name = excluded.customer_name,
	region        = excluded.region;`

	upsertOrderFact = `
INSERT INTO orders_fact (order_id, mobile_number, order_date_time_utc, total_amount)
VALUES (?, ?, ?, ?)
ON CONFLICT (order_id) DO UPDATE SET
	mobile_number       = excluded.mobile_number,
	order_date_time_utc = excluded.order_date_time_utc,
	total_amount        = excluded.total_amount;`

	upsertOrderItem = `
INSERT INTO order_items (order_id, sku_id, sku_count)
VALUES (?, ?, ?)
ON CONFLICT (order_id, sku_id) DO UPDATE SET
	sku_count = excluded.sku_count;`
)

// The four KPI aggregations. Each must return exactly the rows the
// in-memory kpi package computes, including ordering and tie-breaks.
const (
	queryRepeatCustomers = `
SELECT
	COALESCE(c.customer_id, '')   AS customer_id,
	COALESCE(c.customer_name, '') AS customer_name,
	o.mobile_number,
	COUNT(DISTINCT o.order_id)    AS order_count
FROM orders_fact o
LEFT JOIN customers c ON c.mobile_number = o.mobile_number
GROUP BY o.mobile_number, c.customer_id, c.customer_name
HAVING order_count > 1
ORDER BY order_count DESC, o.mobile_number ASC;`

	queryMonthlyTrends = `
SELECT
	strftime('%Y-%m', order_date_time_utc) AS order_month,
	COUNT(DISTINCT order_id)               AS total_orders,
	SUM(total_amount)                      AS total_revenue
FROM orders_fact
GROUP BY order_month
ORDER BY order_month ASC;`

	queryRegionalRevenue = `
SELECT
	c.region,
	SUM(o.total_amount) AS regional_revenue
FROM orders_fact o
JOIN customers c ON c.mobile_number = o.mobile_number
GROUP BY c.region
ORDER BY regional_revenue DESC, c.region ASC;`

	queryTopCustomers = `
SELECT
	COALESCE(c.customer_id, '')   AS customer_id,
	COALESCE(c.customer_name, '') AS customer_name,
	o.mobile_number,
	SUM(o.total_amount)           AS total_spend
FROM orders_fact o
LEFT JOIN customers c ON c.mobile_number = o.mobile_number
WHERE o.order_date_time_utc >= ?
GROUP BY o.mobile_number, c.customer_id, c.customer_name
ORDER BY total_spend DESC, o.mobile_number ASC
LIMIT ?;`
)
