package repository

import (
	"context"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/infra"
	"seatly/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, user_email, bar_id, bar_name, match_id, match_teams,
	name, phone, people, price_per_person_cents, total_price_cents, table_ids,
	status, paid, payment_id, source, version, created_at, updated_at`

const insertReservation = `INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

const updateReservation = `UPDATE reservations
SET table_ids = $2, status = $3, paid = $4, payment_id = $5, updated_at = $6, version = version + 1
WHERE id = $1 AND version = $7`

const selectReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

const selectReservationsByUser = `SELECT ` + reservationColumns + ` FROM reservations
WHERE user_id = $1
ORDER BY created_at DESC, id`

const selectClaims = `SELECT id, table_ids FROM reservations
WHERE bar_id = $1 AND match_id = $2 AND status = ANY($3)
ORDER BY created_at, id`

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	s := res.Snapshot()
	_, err := r.db.Exec(ctx, insertReservation,
		s.ID, s.UserID, s.UserEmail, s.BarID, s.BarName, s.MatchID, s.MatchTeams,
		s.Name, s.Phone, s.People, s.PricePerPerson, s.TotalPrice, pgconv.NonNilStrings(s.TableIDs),
		string(s.Status), s.Paid, pgconv.TextFromPtr(s.PaymentID), s.Source, s.Version,
		pgconv.Timestamptz(s.CreatedAt), pgconv.Timestamptz(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	s := res.Snapshot()
	tag, err := r.db.Exec(ctx, updateReservation,
		s.ID, pgconv.NonNilStrings(s.TableIDs), string(s.Status), s.Paid,
		pgconv.TextFromPtr(s.PaymentID), pgconv.Timestamptz(s.UpdatedAt), s.Version,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, selectReservationByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindByUser(ctx context.Context, userID string) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, selectReservationsByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) Claims(ctx context.Context, barID, matchID string) ([]tableassign.Claim, error) {
	statuses := make([]string, 0, len(reservation.ClaimingStatuses))
	for _, s := range reservation.ClaimingStatuses {
		statuses = append(statuses, string(s))
	}

	rows, err := r.db.Query(ctx, selectClaims, barID, matchID, statuses)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list table claims", err)
	}
	defer rows.Close()

	var out []tableassign.Claim
	for rows.Next() {
		var c tableassign.Claim
		if err := rows.Scan(&c.ReservationID, &c.TableIDs); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table claim", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list table claims", err)
	}
	return out, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		s         reservation.Snapshot
		status    string
		paymentID pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.UserEmail, &s.BarID, &s.BarName, &s.MatchID, &s.MatchTeams,
		&s.Name, &s.Phone, &s.People, &s.PricePerPerson, &s.TotalPrice, &s.TableIDs,
		&status, &s.Paid, &paymentID, &s.Source, &s.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = reservation.Status(status)
	s.PaymentID = pgconv.StringPtrFromPgtype(paymentID)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return reservation.Reconstruct(s), nil
}
