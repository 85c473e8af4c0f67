package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calloway/inkwell/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var categoryID, catID sql.NullInt64
	var catName, catColor sql.NullString

	err := scanner.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &categoryID,
		&catID, &catName, &catColor,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		n.CategoryID = &categoryID.Int64
	}
	// The join only matches the owner's categories; a missing match reads
	// back as uncategorized.
	if catID.Valid {
		n.Category = &model.NoteCategory{
			ID:    catID.Int64,
			Name:  catName.String,
			Color: catColor.String,
		}
	}
	return &n, nil
}

// noteCols resolves the referenced category in the same query. The join
// carries the owner predicate so a note can never surface another user's
// category.
const noteCols = `n.id, n.user_id, n.title, n.content, n.category_id,
	c.id, c.name, c.color, n.created_at, n.updated_at`

const noteFrom = `FROM notes n
	LEFT JOIN categories c ON c.id = n.category_id AND c.user_id = n.user_id`

func (s *NoteStore) Create(userID int64, title, content string, categoryID *int64) (*model.Note, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}

	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO notes (user_id, title, content, category_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, title, content, cID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(userID, id)
}

// GetByID returns the note only if it is owned by userID. A note owned by
// someone else scans the same as a note that does not exist.
func (s *NoteStore) GetByID(userID, id int64) (*model.Note, error) {
	row := s.db.QueryRow(
		`SELECT `+noteCols+` `+noteFrom+` WHERE n.id = ? AND n.user_id = ?`,
		id, userID,
	)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// List returns the user's notes ordered by most recently updated first,
// optionally narrowed to one category.
func (s *NoteStore) List(userID int64, categoryID *int64) ([]model.Note, error) {
	query := `SELECT ` + noteCols + ` ` + noteFrom + ` WHERE n.user_id = ?`
	args := []any{userID}
	if categoryID != nil {
		query += ` AND n.category_id = ?`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY n.updated_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// Update overwrites the mutable fields. It returns nil if no note with that
// id is owned by userID; the ownership predicate is part of the UPDATE
// itself, so existence and authorization are a single statement.
func (s *NoteStore) Update(userID, id int64, title, content string, categoryID *int64) (*model.Note, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, category_id = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		title, content, cID, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
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

// Delete removes the note and reports whether a row was actually deleted.
func (s *NoteStore) Delete(userID, id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
