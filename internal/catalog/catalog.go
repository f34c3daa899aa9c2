package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Card is one catalog row.
type Card struct {
	Code          string
	Name          string
	Type          string
	PackCode      string
	PackName      string
	Position      int
	Quantity      int
	CanonicalCode string // Code after following reprint links
	InCoreSet     bool
}

// Pack summarizes one product of a game.
type Pack struct {
	Code         string
	Name         string
	Cards        int
	CoreReprints int // Cards whose canonical printing is in the Core Set
	SyncedAt     time.Time
}

// SyncCards replaces the catalog of game with cards. Cards whose code was
// already seen are skipped so the first printing wins.
func (db *DB) SyncCards(ctx context.Context, game string, cards []Card) error {
	now := time.Now().Unix()

	return db.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE game = ?`, game); err != nil {
			return fmt.Errorf("failed to clear cards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM packs WHERE game = ?`, game); err != nil {
			return fmt.Errorf("failed to clear packs: %w", err)
		}

		packStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO packs (game, code, name, synced_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (game, code) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare pack insert: %w", err)
		}
		defer func() { _ = packStmt.Close() }()

		cardStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cards (game, code, name, type, pack_code, position, quantity, canonical_code, in_core_set)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (game, code) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare card insert: %w", err)
		}
		defer func() { _ = cardStmt.Close() }()

		for _, c := range cards {
			packName := c.PackName
			if packName == "" {
				packName = c.PackCode
			}
			if _, err := packStmt.ExecContext(ctx, game, c.PackCode, packName, now); err != nil {
				return fmt.Errorf("failed to insert pack %s: %w", c.PackCode, err)
			}

			canonical := c.CanonicalCode
			if canonical == "" {
				canonical = c.Code
			}
			quantity := c.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			if _, err := cardStmt.ExecContext(ctx, game, c.Code, c.Name, c.Type, c.PackCode,
				c.Position, quantity, canonical, c.InCoreSet); err != nil {
				return fmt.Errorf("failed to insert card %s: %w", c.Code, err)
			}
		}
		return nil
	})
}

// ListPacks returns the packs of game in first-seen order.
func (db *DB) ListPacks(ctx context.Context, game string) ([]Pack, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT p.code, p.name, p.synced_at,
		       COUNT(c.code),
		       COALESCE(SUM(CASE WHEN c.in_core_set = 1 AND c.pack_code != 'core' THEN 1 ELSE 0 END), 0)
		FROM packs p
		LEFT JOIN cards c ON c.game = p.game AND c.pack_code = p.code
		WHERE p.game = ?
		GROUP BY p.rowid, p.code, p.name, p.synced_at
		ORDER BY p.rowid
	`, game)
	if err != nil {
		return nil, fmt.Errorf("failed to query packs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var packs []Pack
	for rows.Next() {
		var p Pack
		var syncedAt int64
		if err := rows.Scan(&p.Code, &p.Name, &syncedAt, &p.Cards, &p.CoreReprints); err != nil {
			return nil, fmt.Errorf("failed to scan pack: %w", err)
		}
		p.SyncedAt = time.Unix(syncedAt, 0)
		packs = append(packs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packs: %w", err)
	}
	return packs, nil
}

// PackCards returns the cards of one pack ordered by position.
func (db *DB) PackCards(ctx context.Context, game, packCode string) ([]Card, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT c.code, c.name, c.type, c.pack_code, p.name, c.position, c.quantity, c.canonical_code, c.in_core_set
		FROM cards c
		JOIN packs p ON p.game = c.game AND p.code = c.pack_code
		WHERE c.game = ? AND c.pack_code = ?
		ORDER BY c.position, c.code
	`, game, packCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query pack %s: %w", packCode, err)
	}
	defer func() { _ = rows.Close() }()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.Code, &c.Name, &c.Type, &c.PackCode, &c.PackName,
			&c.Position, &c.Quantity, &c.CanonicalCode, &c.InCoreSet); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return cards, nil
}

// CoreSetCodes returns the codes of game's cards that count as Core Set
// cards, including reprints whose canonical printing is in the Core Set.
func (db *DB) CoreSetCodes(ctx context.Context, game string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT code FROM cards WHERE game = ? AND in_core_set = 1 ORDER BY code
	`, game)
	if err != nil {
		return nil, fmt.Errorf("failed to query core set: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
