package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/search"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id              TEXT PRIMARY KEY,
	client_name     TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	meeting_type    TEXT NOT NULL,
	meeting_date    DATETIME NOT NULL,
	notes           TEXT NOT NULL,
	property_type   TEXT NOT NULL DEFAULT '',
	bedrooms        INTEGER,
	bathrooms       REAL,
	min_price       REAL,
	max_price       REAL,
	preferred_areas TEXT NOT NULL DEFAULT '[]',
	must_haves      TEXT NOT NULL DEFAULT '[]',
	nice_to_haves   TEXT NOT NULL DEFAULT '[]',
	deal_breakers   TEXT NOT NULL DEFAULT '[]',
	timeline        TEXT NOT NULL,
	pre_approved    INTEGER NOT NULL DEFAULT 0,
	follow_up_date  DATETIME,
	tags            TEXT NOT NULL DEFAULT '[]',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
CREATE INDEX IF NOT EXISTS idx_notes_timeline   ON notes(timeline);
`

const noteColumns = `id, client_name, phone, email, meeting_type, meeting_date, notes,
	property_type, bedrooms, bathrooms, min_price, max_price,
	preferred_areas, must_haves, nice_to_haves, deal_breakers,
	timeline, pre_approved, follow_up_date, tags, created_at, updated_at`

// DB is the SQLite-backed record store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Create persists a new note. The id, createdAt and updatedAt are assigned
// here; whatever the caller set is overwritten.
func (db *DB) Create(n models.ClientNote) (*models.ClientNote, error) {
	n.ID = uuid.NewString()
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	if _, err := db.conn.Exec(`
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, insertArgs(&n)...); err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	return &n, nil
}

// Get returns one note by id.
func (db *DB) Get(id string) (*models.ClientNote, error) {
	row := db.conn.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	return n, nil
}

// List returns notes newest-created first. A non-empty tag restricts the
// result to notes carrying it; limit <= 0 means no limit.
func (db *DB) List(limit, offset int, tag string) ([]models.ClientNote, int, error) {
	where, args := "", []any{}
	if tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		where = ` WHERE tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM notes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count notes: %w", err)
	}

	q := `SELECT ` + noteColumns + ` FROM notes` + where + ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	out, err := collectNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// All returns a full snapshot, newest-created first.
func (db *DB) All() ([]models.ClientNote, error) {
	notes, _, err := db.List(0, 0, "")
	return notes, err
}

// Update applies a partial patch inside a transaction. The merged note is
// validated before being written so a bad patch never lands.
func (db *DB) Update(id string, p Patch) (*models.ClientNote, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	row := tx.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load for update: %w", err)
	}

	applyPatch(n, p)
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	n.UpdatedAt = time.Now().UTC()

	args := insertArgs(n)
	// id is the WHERE argument, not a SET column.
	args = append(args[1:], id)
	if _, err := tx.Exec(`
		UPDATE notes SET
			client_name = ?, phone = ?, email = ?, meeting_type = ?, meeting_date = ?,
			notes = ?, property_type = ?, bedrooms = ?, bathrooms = ?, min_price = ?,
			max_price = ?, preferred_areas = ?, must_haves = ?, nice_to_haves = ?,
			deal_breakers = ?, timeline = ?, pre_approved = ?, follow_up_date = ?,
			tags = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, args...); err != nil {
		return nil, fmt.Errorf("store: update note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit update: %w", err)
	}
	return n, nil
}

// Delete removes one note by id.
func (db *DB) Delete(id string) error {
	res, err := db.conn.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Find scans the snapshot and applies the structured filter in-process.
// Collections here are one agent's notes; a full scan keeps the predicate
// semantics in exactly one place.
func (db *DB) Find(f *search.Filter) ([]models.ClientNote, error) {
	all, err := db.All()
	if err != nil {
		return nil, err
	}
	var out []models.ClientNote
	for i := range all {
		if f.Match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// applyPatch copies the present patch fields onto n. id and createdAt have
// no patch fields, so they cannot be overwritten.
func applyPatch(n *models.ClientNote, p Patch) {
	if p.ClientName != nil {
		n.ClientName = *p.ClientName
	}
	if p.ContactInfo != nil {
		n.ContactInfo = *p.ContactInfo
	}
	if p.MeetingType != nil {
		n.MeetingType = *p.MeetingType
	}
	if p.MeetingDate != nil {
		n.MeetingDate = *p.MeetingDate
	}
	if p.Notes != nil {
		n.Notes = *p.Notes
	}
	if p.Requirements != nil {
		n.Requirements = *p.Requirements
	}
	if p.Timeline != nil {
		n.Timeline = *p.Timeline
	}
	if p.PreApproved != nil {
		n.PreApproved = *p.PreApproved
	}
	if p.FollowUpDate != nil {
		n.FollowUpDate = p.FollowUpDate
	}
	if p.Tags != nil {
		n.Tags = *p.Tags
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (*models.ClientNote, error) {
	var (
		n                        models.ClientNote
		bedrooms                 sql.NullInt64
		bathrooms, minP, maxP    sql.NullFloat64
		followUp                 sql.NullTime
		areas, musts, nice, deal string
		tags                     string
		preApproved              int
	)
	err := r.Scan(&n.ID, &n.ClientName, &n.ContactInfo.Phone, &n.ContactInfo.Email,
		&n.MeetingType, &n.MeetingDate, &n.Notes,
		&n.Requirements.PropertyType, &bedrooms, &bathrooms, &minP, &maxP,
		&areas, &musts, &nice, &deal,
		&n.Timeline, &preApproved, &followUp, &tags, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if bedrooms.Valid {
		v := int(bedrooms.Int64)
		n.Requirements.Bedrooms = &v
	}
	if bathrooms.Valid {
		n.Requirements.Bathrooms = &bathrooms.Float64
	}
	if minP.Valid {
		n.Requirements.MinPrice = &minP.Float64
	}
	if maxP.Valid {
		n.Requirements.MaxPrice = &maxP.Float64
	}
	if followUp.Valid {
		t := followUp.Time
		n.FollowUpDate = &t
	}
	n.PreApproved = preApproved != 0

	n.Requirements.PreferredAreas = decodeList(areas)
	n.Requirements.MustHaves = decodeList(musts)
	n.Requirements.NiceToHaves = decodeList(nice)
	n.Requirements.DealBreakers = decodeList(deal)
	n.Tags = decodeList(tags)
	return &n, nil
}

func collectNotes(rows *sql.Rows) ([]models.ClientNote, error) {
	var out []models.ClientNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// insertArgs returns the column values in noteColumns order.
func insertArgs(n *models.ClientNote) []any {
	var bedrooms, bathrooms, minP, maxP, followUp any
	if n.Requirements.Bedrooms != nil {
		bedrooms = *n.Requirements.Bedrooms
	}
	if n.Requirements.Bathrooms != nil {
		bathrooms = *n.Requirements.Bathrooms
	}
	if n.Requirements.MinPrice != nil {
		minP = *n.Requirements.MinPrice
	}
	if n.Requirements.MaxPrice != nil {
		maxP = *n.Requirements.MaxPrice
	}
	if n.FollowUpDate != nil {
		followUp = *n.FollowUpDate
	}
	preApproved := 0
	if n.PreApproved {
		preApproved = 1
	}
	return []any{
		n.ID, n.ClientName, n.ContactInfo.Phone, n.ContactInfo.Email,
		n.MeetingType, n.MeetingDate, n.Notes,
		n.Requirements.PropertyType, bedrooms, bathrooms, minP, maxP,
		encodeList(n.Requirements.PreferredAreas), encodeList(n.Requirements.MustHaves),
		encodeList(n.Requirements.NiceToHaves), encodeList(n.Requirements.DealBreakers),
		n.Timeline, preApproved, followUp, encodeList(n.Tags),
		n.CreatedAt, n.UpdatedAt,
	}
}

func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func decodeList(raw string) []string {
	out := []string{}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
