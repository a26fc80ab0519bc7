package mockapi

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// seedPassword はデモユーザー共通のパスワード。
const seedPassword = "password123"

// seed は空のデータベースへデモデータを投入する。既にユーザーがいれば何もしない。
func seed(st *store) error {
	var count int
	if err := st.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("ユーザー数の確認に失敗: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	passwordHash := string(hash)

	if _, err := st.createUser("admin", "管理者", "admin@example.com", "03-0000-0000", passwordHash, true); err != nil {
		return err
	}
	sellerID, err := st.createUser("seller", "田中商店", "seller@example.com", "03-1111-1111", passwordHash, true)
	if err != nil {
		return err
	}
	if _, err := st.createUser("seller", "承認待ち八百屋", "pending@example.com", "03-2222-2222", passwordHash, false); err != nil {
		return err
	}
	buyerID, err := st.createUser("buyer", "山田太郎", "buyer@example.com", "090-3333-3333", passwordHash, true)
	if err != nil {
		return err
	}
	courierID, err := st.createUser("courier", "配達一郎", "courier@example.com", "090-4444-4444", passwordHash, true)
	if err != nil {
		return err
	}

	fruitID, err := st.createCategory("くだもの", "季節のくだもの", "")
	if err != nil {
		return err
	}
	citrusID, err := st.createCategory("柑橘類", "みかん・レモンなど", fruitID)
	if err != nil {
		return err
	}
	if _, err := st.createCategory("野菜", "産地直送の野菜", ""); err != nil {
		return err
	}

	appleID, err := st.createProduct(sellerID, fruitID, "りんご", "青森産", "120", 30)
	if err != nil {
		return err
	}
	if _, err := st.createProduct(sellerID, citrusID, "みかん", "愛媛産", "80", 50); err != nil {
		return err
	}
	if _, err := st.createProduct(sellerID, fruitID, "ぶどう", "山梨産", "450.50", 10); err != nil {
		return err
	}

	// 配達済みの注文を1件作っておく。苦情とトラブル報告の参照先になる。
	if err := st.upsertCartItem(buyerID, appleID, 2); err != nil {
		return err
	}
	orderID, err := st.createOrder(buyerID, "東京都千代田区1-1-1")
	if err != nil {
		return err
	}
	if _, err := st.db.Exec(
		`UPDATE orders SET courier_id = ?, status = 'delivered' WHERE id = ?`, courierID, orderID,
	); err != nil {
		return fmt.Errorf("デモ注文の更新に失敗: %w", err)
	}
	if _, err := st.db.Exec(
		`INSERT INTO complaints (id, buyer_id, order_id, description) VALUES (?, ?, ?, ?)`,
		"complaint-demo-1", buyerID, orderID, "箱がつぶれていた",
	); err != nil {
		return fmt.Errorf("デモ苦情の投入に失敗: %w", err)
	}
	if _, err := st.createIssue(courierID, orderID, "不在のため再配達"); err != nil {
		return err
	}
	return nil
}
