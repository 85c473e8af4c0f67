package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calloway/inkwell/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := scanner.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, user_id, name, color, created_at, updated_at`

func (s *CategoryStore) Create(userID int64, name, color string) (*model.Category, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO categories (user_id, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, name, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(userID, id)
}

// GetByID returns the category only if it is owned by userID.
func (s *CategoryStore) GetByID(userID, id int64) (*model.Category, error) {
	row := s.db.QueryRow(
		`SELECT `+categoryCols+` FROM categories WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List returns the user's categories ordered by name.
func (s *CategoryStore) List(userID int64) ([]model.Category, error) {
	rows, err := s.db.Query(
		`SELECT `+categoryCols+` FROM categories WHERE user_id = ? ORDER BY name COLLATE NOCASE ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// Update overwrites name and color. It returns nil if no category with that
// id is owned by userID.
func (s *CategoryStore) Update(userID, id int64, name, color string) (*model.Category, error) {
	result, err := s.db.Exec(
		`UPDATE categories SET name = ?, color = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		name, color, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(userID, id)
}

// Delete removes the category and reports whether a row was actually
// deleted. Notes referencing it keep existing; the foreign key nulls out
// their reference.
func (s *CategoryStore) Delete(userID, id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
