package store

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"passionmatch-engine/internal/domain"
)

const sqliteTime = "2006-01-02 15:04:05"

type ListHotelsOpts struct {
	Source string
	Window string // 24h | 7d | 30d | all
	Limit  int
}

// HotelSourceID derives a stable dedupe key for listings that carry no id of
// their own.
func HotelSourceID(source, name, address string) string {
	norm := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), " ")) }
	sum := sha1.Sum([]byte(norm(source) + "|" + norm(name) + "|" + norm(address)))
	return hex.EncodeToString(sum[:])
}

// UpsertHotel inserts h or refreshes the row with the same source id. The
// returned id is the stored row's id; added reports whether it is new.
func UpsertHotel(ctx context.Context, db *sql.DB, h domain.Hotel) (id string, added bool, err error) {
	if strings.TrimSpace(h.Name) == "" {
		return "", false, errors.New("upsert hotel: name is required")
	}
	if h.SourceID == "" {
		h.SourceID = HotelSourceID(h.Source, h.Name, h.Address)
	}
	facilities := h.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	facB, err := json.Marshal(facilities)
	if err != nil {
		return "", false, fmt.Errorf("marshal facilities: %w", err)
	}
	now := time.Now().UTC().Format(sqliteTime)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("upsert hotel: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `SELECT id FROM hotels WHERE source_id = ? LIMIT 1;`, h.SourceID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = h.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO hotels (id, source_id, source, name, description, facilities, address, location, rating, price, url, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			id, h.SourceID, h.Source, h.Name, h.Description, string(facB), h.Address, h.Location, h.Rating, h.Price, h.URL, now, now,
		)
		if err != nil {
			return "", false, fmt.Errorf("insert hotel: %w", err)
		}
		added = true
	case err != nil:
		return "", false, fmt.Errorf("lookup hotel: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `
UPDATE hotels
SET source = ?, name = ?, description = ?, facilities = ?, address = ?, location = ?, rating = ?, price = ?, url = ?, last_seen = ?
WHERE id = ?;`,
			h.Source, h.Name, h.Description, string(facB), h.Address, h.Location, h.Rating, h.Price, h.URL, now, id,
		)
		if err != nil {
			return "", false, fmt.Errorf("update hotel: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("upsert hotel: %w", err)
	}
	return id, added, nil
}

const hotelColumns = `id, source_id, source, name, description, facilities, address, location, rating, price, url`

func ListHotels(ctx context.Context, db *sql.DB, opts ListHotelsOpts) ([]domain.Hotel, error) {
	if opts.Limit <= 0 || opts.Limit > 5000 {
		opts.Limit = 1000
	}

	// time window filter over first_seen (stored in sqlite datetime format)
	var conds []string
	var args []any
	switch opts.Window {
	case "24h":
		conds = append(conds, "first_seen >= datetime('now','-24 hours')")
	case "7d":
		conds = append(conds, "first_seen >= datetime('now','-7 days')")
	case "30d":
		conds = append(conds, "first_seen >= datetime('now','-30 days')")
	}
	if opts.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, opts.Source)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT %s
FROM hotels
%s
ORDER BY first_seen DESC, name ASC
LIMIT ?;
`, hotelColumns, where)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return out, nil
}

func GetHotel(ctx context.Context, db *sql.DB, id string) (domain.Hotel, bool, error) {
	row := db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ? LIMIT 1;`, id)
	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, false, nil
	}
	if err != nil {
		return domain.Hotel{}, false, err
	}
	return h, true, nil
}

func DeleteHotel(ctx context.Context, db *sql.DB, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete hotel: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CleanupOldHotels drops listings not seen by any source for three months.
func CleanupOldHotels(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM hotels
WHERE last_seen < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old hotels: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHotel(r rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var facJSON string
	if err := r.Scan(
		&h.ID,
		&h.SourceID,
		&h.Source,
		&h.Name,
		&h.Description,
		&facJSON,
		&h.Address,
		&h.Location,
		&h.Rating,
		&h.Price,
		&h.URL,
	); err != nil {
		return domain.Hotel{}, err
	}
	if err := json.Unmarshal([]byte(facJSON), &h.Facilities); err != nil || h.Facilities == nil {
		h.Facilities = []string{}
	}
	return h, nil
}
