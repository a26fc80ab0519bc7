package mockapi

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// errNotFound は対象の行が存在しないことを示す。
var errNotFound = errors.New("行が見つかりません")

// store はSQLiteへのクエリをまとめたオブジェクト。
type store struct {
	db *sql.DB
}

// userRow はusersテーブルの1行。
type userRow struct {
	ID           string
	Role         string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Approved     bool
	AvatarURL    string
	CreatedAt    string
}

// categoryRow はcategoriesテーブルの1行。
type categoryRow struct {
	ID          string
	Name        string
	Description string
	ParentID    string
}

// productRow はproductsテーブルの1行。出品者名はusersから結合する。
type productRow struct {
	ID          string
	SellerID    string
	SellerName  string
	CategoryID  string
	Name        string
	Description string
	Price       string
	Stock       int
	ImageURL    string
	CreatedAt   string
}

// cartItemRow はcart_itemsと商品情報を結合した1行。
type cartItemRow struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice string
}

// orderRow はordersテーブルの1行。購入者名はusersから結合する。
type orderRow struct {
	ID        string
	BuyerID   string
	BuyerName string
	CourierID string
	Status    string
	Total     string
	Address   string
	CreatedAt string
}

// orderItemRow はorder_itemsテーブルの1行。
type orderItemRow struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice string
}

// complaintRow はcomplaintsテーブルの1行。申告者名はusersから結合する。
type complaintRow struct {
	ID          string
	BuyerName   string
	OrderID     string
	Description string
	Status      string
	CreatedAt   string
}

// issueRow はissuesテーブルの1行。
type issueRow struct {
	ID          string
	CourierID   string
	OrderID     string
	Description string
	CreatedAt   string
}

// createUser はユーザーを登録して生成したIDを返す。
func (s *store) createUser(role, name, email, phone, passwordHash string, approved bool) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO users (id, role, name, email, phone, password_hash, approved) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, role, name, email, phone, passwordHash, approved,
	)
	if err != nil {
		return "", fmt.Errorf("ユーザーの登録に失敗: %w", err)
	}
	return id, nil
}

// userByEmail はメールアドレスでユーザーを検索する。
func (s *store) userByEmail(email string) (userRow, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, role, name, email, phone, password_hash, approved, avatar_url, created_at FROM users WHERE email = ?`, email,
	))
}

// userByID はIDでユーザーを検索する。
func (s *store) userByID(id string) (userRow, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, role, name, email, phone, password_hash, approved, avatar_url, created_at FROM users WHERE id = ?`, id,
	))
}

func (s *store) scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Approved, &u.AvatarURL, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return userRow{}, errNotFound
	}
	if err != nil {
		return userRow{}, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	return u, nil
}

// updateUser はユーザーのプロフィールを更新する。
func (s *store) updateUser(id, name, phone string) error {
	result, err := s.db.Exec(`UPDATE users SET name = ?, phone = ? WHERE id = ?`, name, phone, id)
	if err != nil {
		return fmt.Errorf("プロフィールの更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// updateAvatar はユーザーのアバターURLを更新する。
func (s *store) updateAvatar(id, avatarURL string) error {
	result, err := s.db.Exec(`UPDATE users SET avatar_url = ? WHERE id = ?`, avatarURL, id)
	if err != nil {
		return fmt.Errorf("アバターの更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// deleteUser はユーザーを削除する。
func (s *store) deleteUser(id string) error {
	result, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ユーザーの削除に失敗: %w", err)
	}
	return requireAffected(result)
}

// usersByRole はロールでユーザー一覧をページ単位で取得する。
func (s *store) usersByRole(role string, limit, offset int) ([]userRow, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ユーザー数の取得に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, role, name, email, phone, password_hash, approved, avatar_url, created_at
		 FROM users WHERE role = ? ORDER BY created_at, id LIMIT ? OFFSET ?`, role, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ユーザー一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	users := []userRow{}
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Approved, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("ユーザー行の読み取りに失敗: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// sellers は出品者一覧をページ単位で取得する。pendingOnlyで承認待ちに絞る。
func (s *store) sellers(pendingOnly bool, limit, offset int) ([]userRow, int, error) {
	where := `role = 'seller'`
	if pendingOnly {
		where += ` AND approved = 0`
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE ` + where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("出品者数の取得に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, role, name, email, phone, password_hash, approved, avatar_url, created_at
		 FROM users WHERE `+where+` ORDER BY created_at, id LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("出品者一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	sellers := []userRow{}
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Approved, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("出品者行の読み取りに失敗: %w", err)
		}
		sellers = append(sellers, u)
	}
	return sellers, total, rows.Err()
}

// approveSeller は出品者を承認済みにする。
func (s *store) approveSeller(id string) (userRow, error) {
	result, err := s.db.Exec(`UPDATE users SET approved = 1 WHERE id = ? AND role = 'seller'`, id)
	if err != nil {
		return userRow{}, fmt.Errorf("出品者の承認に失敗: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return userRow{}, err
	}
	return s.userByID(id)
}

// listCategories は全カテゴリを取得する。
func (s *store) listCategories() ([]categoryRow, error) {
	rows, err := s.db.Query(`SELECT id, name, description, parent_id FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("カテゴリ一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	categories := []categoryRow{}
	for rows.Next() {
		var c categoryRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID); err != nil {
			return nil, fmt.Errorf("カテゴリ行の読み取りに失敗: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// categoryByID はIDでカテゴリを検索する。
func (s *store) categoryByID(id string) (categoryRow, error) {
	var c categoryRow
	err := s.db.QueryRow(`SELECT id, name, description, parent_id FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ParentID)
	if errors.Is(err, sql.ErrNoRows) {
		return categoryRow{}, errNotFound
	}
	if err != nil {
		return categoryRow{}, fmt.Errorf("カテゴリの取得に失敗: %w", err)
	}
	return c, nil
}

// createCategory はカテゴリを作成して生成したIDを返す。
func (s *store) createCategory(name, description, parentID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO categories (id, name, description, parent_id) VALUES (?, ?, ?, ?)`,
		id, name, description, parentID,
	)
	if err != nil {
		return "", fmt.Errorf("カテゴリの作成に失敗: %w", err)
	}
	return id, nil
}

// updateCategory はカテゴリを更新する。
func (s *store) updateCategory(id, name, description, parentID string) error {
	result, err := s.db.Exec(
		`UPDATE categories SET name = ?, description = ?, parent_id = ? WHERE id = ?`,
		name, description, parentID, id,
	)
	if err != nil {
		return fmt.Errorf("カテゴリの更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// deleteCategory はカテゴリを削除する。
func (s *store) deleteCategory(id string) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("カテゴリの削除に失敗: %w", err)
	}
	return requireAffected(result)
}

// searchProducts は商品を検索条件付きでページ単位で取得する。
// sellerIDを指定すると出品者の商品に絞る。
func (s *store) searchProducts(search, categoryID, sellerID string, limit, offset int) ([]productRow, int, error) {
	conditions := []string{"1 = 1"}
	args := []any{}
	if search != "" {
		conditions = append(conditions, "p.name LIKE ?")
		args = append(args, "%"+search+"%")
	}
	if categoryID != "" {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, categoryID)
	}
	if sellerID != "" {
		conditions = append(conditions, "p.seller_id = ?")
		args = append(args, sellerID)
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products p WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("商品数の取得に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT p.id, p.seller_id, u.name, p.category_id, p.name, p.description, p.price, p.stock, p.image_url, p.created_at
		 FROM products p JOIN users u ON u.id = p.seller_id
		 WHERE `+where+` ORDER BY p.created_at, p.id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("商品一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	products := []productRow{}
	for rows.Next() {
		var p productRow
		if err := rows.Scan(&p.ID, &p.SellerID, &p.SellerName, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("商品行の読み取りに失敗: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// productByID はIDで商品を検索する。
func (s *store) productByID(id string) (productRow, error) {
	var p productRow
	err := s.db.QueryRow(
		`SELECT p.id, p.seller_id, u.name, p.category_id, p.name, p.description, p.price, p.stock, p.image_url, p.created_at
		 FROM products p JOIN users u ON u.id = p.seller_id WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.SellerID, &p.SellerName, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return productRow{}, errNotFound
	}
	if err != nil {
		return productRow{}, fmt.Errorf("商品の取得に失敗: %w", err)
	}
	return p, nil
}

// createProduct は商品を登録して生成したIDを返す。
func (s *store) createProduct(sellerID, categoryID, name, description, price string, stock int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO products (id, seller_id, category_id, name, description, price, stock) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, sellerID, categoryID, name, description, price, stock,
	)
	if err != nil {
		return "", fmt.Errorf("商品の登録に失敗: %w", err)
	}
	return id, nil
}

// updateProduct は出品者自身の商品を更新する。
func (s *store) updateProduct(id, sellerID, categoryID, name, description, price string, stock int) error {
	result, err := s.db.Exec(
		`UPDATE products SET category_id = ?, name = ?, description = ?, price = ?, stock = ? WHERE id = ? AND seller_id = ?`,
		categoryID, name, description, price, stock, id, sellerID,
	)
	if err != nil {
		return fmt.Errorf("商品の更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// deleteProduct は出品者自身の商品を削除する。
func (s *store) deleteProduct(id, sellerID string) error {
	result, err := s.db.Exec(`DELETE FROM products WHERE id = ? AND seller_id = ?`, id, sellerID)
	if err != nil {
		return fmt.Errorf("商品の削除に失敗: %w", err)
	}
	return requireAffected(result)
}

// cartItems は購入者のカート内容を取得する。
func (s *store) cartItems(userID string) ([]cartItemRow, error) {
	rows, err := s.db.Query(
		`SELECT c.product_id, p.name, c.quantity, p.price
		 FROM cart_items c JOIN products p ON p.id = c.product_id
		 WHERE c.user_id = ? ORDER BY p.name, c.product_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("カートの取得に失敗: %w", err)
	}
	defer rows.Close()

	items := []cartItemRow{}
	for rows.Next() {
		var item cartItemRow
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("カート行の読み取りに失敗: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// upsertCartItem はカートへ商品を追加する。既にあれば数量を加算する。
func (s *store) upsertCartItem(userID, productID string, quantity int) error {
	_, err := s.db.Exec(
		`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("カートへの追加に失敗: %w", err)
	}
	return nil
}

// setCartItemQuantity はカート内の商品の数量を設定する。
func (s *store) setCartItemQuantity(userID, productID string, quantity int) error {
	result, err := s.db.Exec(
		`UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?`,
		quantity, userID, productID,
	)
	if err != nil {
		return fmt.Errorf("カートの更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// removeCartItem はカートから商品を取り除く。
func (s *store) removeCartItem(userID, productID string) error {
	result, err := s.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return fmt.Errorf("カートからの削除に失敗: %w", err)
	}
	return requireAffected(result)
}

// createOrder はカートの内容から注文を作成し、カートを空にする。
// カートが空のときはerrEmptyCartを返す。
func (s *store) createOrder(buyerID, address string) (string, error) {
	items, err := s.cartItems(buyerID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errEmptyCart
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return "", fmt.Errorf("価格の解釈に失敗: %w", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	orderID := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO orders (id, buyer_id, status, total, address) VALUES (?, ?, 'pending', ?, ?)`,
		orderID, buyerID, total.String(), address,
	); err != nil {
		return "", fmt.Errorf("注文の作成に失敗: %w", err)
	}
	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO order_items (order_id, product_id, name, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Name, item.Quantity, item.UnitPrice,
		); err != nil {
			return "", fmt.Errorf("注文明細の作成に失敗: %w", err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, buyerID); err != nil {
		return "", fmt.Errorf("カートの初期化に失敗: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("トランザクション確定に失敗: %w", err)
	}
	return orderID, nil
}

// errEmptyCart はカートが空のまま注文しようとしたことを示す。
var errEmptyCart = errors.New("カートが空です")

// listOrders は条件付きで注文一覧をページ単位で取得する。
// buyerID / courierID / sellerID は空文字で無条件になる。
func (s *store) listOrders(buyerID, courierID, sellerID string, limit, offset int) ([]orderRow, int, error) {
	conditions := []string{"1 = 1"}
	args := []any{}
	if buyerID != "" {
		conditions = append(conditions, "o.buyer_id = ?")
		args = append(args, buyerID)
	}
	if courierID != "" {
		conditions = append(conditions, "o.courier_id = ?")
		args = append(args, courierID)
	}
	if sellerID != "" {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM order_items oi JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.seller_id = ?)`)
		args = append(args, sellerID)
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM orders o WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("注文数の取得に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT o.id, o.buyer_id, u.name, o.courier_id, o.status, o.total, o.address, o.created_at
		 FROM orders o JOIN users u ON u.id = o.buyer_id
		 WHERE `+where+` ORDER BY o.created_at, o.id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("注文一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	orders := []orderRow{}
	for rows.Next() {
		var o orderRow
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.BuyerName, &o.CourierID, &o.Status, &o.Total, &o.Address, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("注文行の読み取りに失敗: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// orderByID は購入者自身の注文を1件取得する。
func (s *store) orderByID(orderID, buyerID string) (orderRow, error) {
	var o orderRow
	err := s.db.QueryRow(
		`SELECT o.id, o.buyer_id, u.name, o.courier_id, o.status, o.total, o.address, o.created_at
		 FROM orders o JOIN users u ON u.id = o.buyer_id
		 WHERE o.id = ? AND o.buyer_id = ?`, orderID, buyerID,
	).Scan(&o.ID, &o.BuyerID, &o.BuyerName, &o.CourierID, &o.Status, &o.Total, &o.Address, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return orderRow{}, errNotFound
	}
	if err != nil {
		return orderRow{}, fmt.Errorf("注文の取得に失敗: %w", err)
	}
	return o, nil
}

// orderItems は注文の明細を取得する。
func (s *store) orderItems(orderID string) ([]orderItemRow, error) {
	rows, err := s.db.Query(
		`SELECT product_id, name, quantity, unit_price FROM order_items WHERE order_id = ? ORDER BY name`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("注文明細の取得に失敗: %w", err)
	}
	defer rows.Close()

	items := []orderItemRow{}
	for rows.Next() {
		var item orderItemRow
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("注文明細行の読み取りに失敗: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// updateOrderStatus は配達員が担当する注文のステータスを更新する。
func (s *store) updateOrderStatus(orderID, courierID, status string) error {
	result, err := s.db.Exec(
		`UPDATE orders SET status = ? WHERE id = ? AND courier_id = ?`, status, orderID, courierID,
	)
	if err != nil {
		return fmt.Errorf("注文ステータスの更新に失敗: %w", err)
	}
	return requireAffected(result)
}

// createIssue は配達トラブル報告を登録して生成したIDを返す。
func (s *store) createIssue(courierID, orderID, description string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO issues (id, courier_id, order_id, description) VALUES (?, ?, ?, ?)`,
		id, courierID, orderID, description,
	)
	if err != nil {
		return "", fmt.Errorf("トラブル報告の登録に失敗: %w", err)
	}
	return id, nil
}

// listComplaints は苦情一覧をページ単位で取得する。
func (s *store) listComplaints(limit, offset int) ([]complaintRow, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM complaints`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("苦情数の取得に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT c.id, u.name, c.order_id, c.description, c.status, c.created_at
		 FROM complaints c JOIN users u ON u.id = c.buyer_id
		 ORDER BY c.created_at, c.id LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("苦情一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	complaints := []complaintRow{}
	for rows.Next() {
		var c complaintRow
		if err := rows.Scan(&c.ID, &c.BuyerName, &c.OrderID, &c.Description, &c.Status, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("苦情行の読み取りに失敗: %w", err)
		}
		complaints = append(complaints, c)
	}
	return complaints, total, rows.Err()
}

// sellerAnalytics は出品者の売上サマリーを集計する。
func (s *store) sellerAnalytics(sellerID string) (totalSales decimal.Decimal, orderCount, productCount int, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE seller_id = ?`, sellerID).Scan(&productCount); err != nil {
		return decimal.Zero, 0, 0, fmt.Errorf("商品数の集計に失敗: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT oi.quantity, oi.unit_price FROM order_items oi
		 JOIN products p ON p.id = oi.product_id WHERE p.seller_id = ?`, sellerID,
	)
	if err != nil {
		return decimal.Zero, 0, 0, fmt.Errorf("売上の集計に失敗: %w", err)
	}
	defer rows.Close()

	totalSales = decimal.Zero
	for rows.Next() {
		var quantity int
		var unitPrice string
		if err := rows.Scan(&quantity, &unitPrice); err != nil {
			return decimal.Zero, 0, 0, fmt.Errorf("売上行の読み取りに失敗: %w", err)
		}
		price, err := decimal.NewFromString(unitPrice)
		if err != nil {
			return decimal.Zero, 0, 0, fmt.Errorf("価格の解釈に失敗: %w", err)
		}
		totalSales = totalSales.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		orderCount++
	}
	return totalSales, orderCount, productCount, rows.Err()
}

// courierAnalytics は配達員の実績を集計する。
func (s *store) courierAnalytics(courierID string) (delivered, pending, issues int, err error) {
	if err = s.db.QueryRow(
		`SELECT COUNT(*) FROM orders WHERE courier_id = ? AND status = 'delivered'`, courierID,
	).Scan(&delivered); err != nil {
		return 0, 0, 0, fmt.Errorf("配達完了数の集計に失敗: %w", err)
	}
	if err = s.db.QueryRow(
		`SELECT COUNT(*) FROM orders WHERE courier_id = ? AND status != 'delivered'`, courierID,
	).Scan(&pending); err != nil {
		return 0, 0, 0, fmt.Errorf("配達中数の集計に失敗: %w", err)
	}
	if err = s.db.QueryRow(
		`SELECT COUNT(*) FROM issues WHERE courier_id = ?`, courierID,
	).Scan(&issues); err != nil {
		return 0, 0, 0, fmt.Errorf("トラブル報告数の集計に失敗: %w", err)
	}
	return delivered, pending, issues, nil
}

// marketAnalytics はマーケット全体のサマリーを集計する。
func (s *store) marketAnalytics() (totalSales decimal.Decimal, orderCount, userCount, sellerCount int, err error) {
	rows, err := s.db.Query(`SELECT total FROM orders`)
	if err != nil {
		return decimal.Zero, 0, 0, 0, fmt.Errorf("売上の集計に失敗: %w", err)
	}
	defer rows.Close()

	totalSales = decimal.Zero
	for rows.Next() {
		var total string
		if err := rows.Scan(&total); err != nil {
			return decimal.Zero, 0, 0, 0, fmt.Errorf("注文行の読み取りに失敗: %w", err)
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return decimal.Zero, 0, 0, 0, fmt.Errorf("金額の解釈に失敗: %w", err)
		}
		totalSales = totalSales.Add(amount)
		orderCount++
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, 0, 0, 0, err
	}

	if err = s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return decimal.Zero, 0, 0, 0, fmt.Errorf("ユーザー数の集計に失敗: %w", err)
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'seller'`).Scan(&sellerCount); err != nil {
		return decimal.Zero, 0, 0, 0, fmt.Errorf("出品者数の集計に失敗: %w", err)
	}
	return totalSales, orderCount, userCount, sellerCount, nil
}

// requireAffected は更新・削除が1行も影響しなかったときerrNotFoundを返す。
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("影響行数の取得に失敗: %w", err)
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}
