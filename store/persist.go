package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SessionIdentity keys persisted state the way every session-level message
// already identifies itself on the wire: BeginString plus the two CompIDs.
type SessionIdentity struct {
	BeginString   string
	SenderCompID  string
	TargetCompID  string
}

const (
	createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	begin_string  TEXT NOT NULL,
	sender_comp_id TEXT NOT NULL,
	target_comp_id TEXT NOT NULL,
	next_out      INTEGER NOT NULL,
	next_in       INTEGER NOT NULL,
	PRIMARY KEY (begin_string, sender_comp_id, target_comp_id)
)`
	createRetainedTable = `
CREATE TABLE IF NOT EXISTS retained_messages (
	begin_string   TEXT NOT NULL,
	sender_comp_id TEXT NOT NULL,
	target_comp_id TEXT NOT NULL,
	seq_num        INTEGER NOT NULL,
	msg_type       TEXT NOT NULL,
	raw            BLOB NOT NULL,
	PRIMARY KEY (begin_string, sender_comp_id, target_comp_id, seq_num)
)`

	upsertSessionQuery = `
INSERT INTO sessions (begin_string, sender_comp_id, target_comp_id, next_out, next_in)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(begin_string, sender_comp_id, target_comp_id)
DO UPDATE SET next_out = excluded.next_out, next_in = excluded.next_in`

	selectSessionQuery = `
SELECT next_out, next_in FROM sessions
WHERE begin_string = ? AND sender_comp_id = ? AND target_comp_id = ?`

	insertRetainedQuery = `
INSERT OR REPLACE INTO retained_messages
	(begin_string, sender_comp_id, target_comp_id, seq_num, msg_type, raw)
VALUES (?, ?, ?, ?, ?, ?)`

	selectRetainedRangeQuery = `
SELECT seq_num, msg_type, raw FROM retained_messages
WHERE begin_string = ? AND sender_comp_id = ? AND target_comp_id = ?
  AND seq_num BETWEEN ? AND ?
ORDER BY seq_num ASC`

	deleteRetainedQuery = `
DELETE FROM retained_messages
WHERE begin_string = ? AND sender_comp_id = ? AND target_comp_id = ?`
)

// PersistedStore is a SQLite-backed RetainedStore that also durably tracks
// the session's sequence counters, so a restarted process can resume
// without renegotiating ResetSeqNumFlag. Prepared statements for the
// sequence upsert and the retained-message insert are kept open for the
// life of the store.
type PersistedStore struct {
	db       *sql.DB
	identity SessionIdentity

	stmtUpsertSession *sql.Stmt
	stmtInsertRetained *sql.Stmt
}

// NewPersistedStore opens (or creates) a SQLite database at dbPath in WAL
// mode and prepares it to track identity's sequence state and retained
// messages.
func NewPersistedStore(dbPath string, identity SessionIdentity) (*PersistedStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	ps := &PersistedStore{db: db, identity: identity}
	if err := ps.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session store schema: %w", err)
	}

	if ps.stmtUpsertSession, err = db.Prepare(upsertSessionQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare session upsert: %w", err)
	}
	if ps.stmtInsertRetained, err = db.Prepare(insertRetainedQuery); err != nil {
		_ = ps.stmtUpsertSession.Close()
		_ = db.Close()
		return nil, fmt.Errorf("prepare retained insert: %w", err)
	}
	return ps, nil
}

func (ps *PersistedStore) initSchema() error {
	if _, err := ps.db.Exec(createSessionsTable); err != nil {
		return err
	}
	_, err := ps.db.Exec(createRetainedTable)
	return err
}

// Close releases prepared statements and the underlying database handle.
func (ps *PersistedStore) Close() error {
	if ps.stmtUpsertSession != nil {
		_ = ps.stmtUpsertSession.Close()
	}
	if ps.stmtInsertRetained != nil {
		_ = ps.stmtInsertRetained.Close()
	}
	return ps.db.Close()
}

// SaveSequence persists the current sequence counters for this store's
// session identity.
func (ps *PersistedStore) SaveSequence(seq *SequenceState) error {
	_, err := ps.stmtUpsertSession.Exec(
		ps.identity.BeginString, ps.identity.SenderCompID, ps.identity.TargetCompID,
		seq.NextOut, seq.NextIn,
	)
	return err
}

// LoadSequence reads back the persisted sequence counters, if any were
// saved for this session identity. found is false on a brand-new session.
func (ps *PersistedStore) LoadSequence() (seq *SequenceState, found bool, err error) {
	row := ps.db.QueryRow(selectSessionQuery, ps.identity.BeginString, ps.identity.SenderCompID, ps.identity.TargetCompID)
	var nextOut, nextIn uint64
	if err := row.Scan(&nextOut, &nextIn); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &SequenceState{NextOut: nextOut, NextIn: nextIn}, true, nil
}

// Put implements RetainedStore.
func (ps *PersistedStore) Put(msg RetainedMessage) error {
	_, err := ps.stmtInsertRetained.Exec(
		ps.identity.BeginString, ps.identity.SenderCompID, ps.identity.TargetCompID,
		msg.SeqNum, msg.MsgType, msg.Raw,
	)
	return err
}

// Range implements RetainedStore.
func (ps *PersistedStore) Range(from, to uint64) ([]RetainedMessage, error) {
	rows, err := ps.db.Query(selectRetainedRangeQuery,
		ps.identity.BeginString, ps.identity.SenderCompID, ps.identity.TargetCompID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RetainedMessage
	for rows.Next() {
		var msg RetainedMessage
		if err := rows.Scan(&msg.SeqNum, &msg.MsgType, &msg.Raw); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// Clear implements RetainedStore, used when a Logon with ResetSeqNumFlag=Y
// discards all prior retained messages.
func (ps *PersistedStore) Clear() error {
	_, err := ps.db.Exec(deleteRetainedQuery, ps.identity.BeginString, ps.identity.SenderCompID, ps.identity.TargetCompID)
	return err
}
