package scope

import (
	"context"
	"database/sql"
	"fmt"
)

// Resolver computes a user's building access scope from three independent
// relations: apartment ownership, active tenancy, and direct building
// management. The result is recomputed on every call — relation membership
// changes between requests (a lease ends, a manager is revoked) and serving
// a stale scope is a data-exposure bug, so nothing here is ever cached.
type Resolver struct {
	db *sql.DB
}

func NewResolver(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

// Ownership and tenancy reach a building through a non-deleted apartment.
// Management delegation stores the building id directly and is deliberately
// NOT filtered by apartment deletion.
const ownedBuildingsQuery = `
SELECT DISTINCT a.building_id
FROM apartment_owners ao
JOIN apartments a ON a.id = ao.apartment_id
WHERE ao.user_id = $1 AND a.is_deleted = FALSE
`

const rentedBuildingsQuery = `
SELECT DISTINCT a.building_id
FROM apartment_renters ar
JOIN apartments a ON a.id = ar.apartment_id
WHERE ar.user_id = $1 AND ar.is_active = TRUE AND a.is_deleted = FALSE
`

const managedBuildingsQuery = `
SELECT building_id
FROM building_managers
WHERE user_id = $1
`

// Resolve returns the access scope for the user. Admins are scope-exempt by
// definition — not "members of every building" — so the bypass returns
// before any relation is queried. For everyone else the three relations are
// queried independently and unioned; there is no ordering dependency between
// them. Store errors propagate untouched; retrying is the pool's concern.
func (r *Resolver) Resolve(ctx context.Context, userID int64, isAdmin bool) (AccessScope, error) {
	if isAdmin {
		return Unrestricted(), nil
	}

	set := make(map[int64]struct{})
	for _, q := range []string{ownedBuildingsQuery, rentedBuildingsQuery, managedBuildingsQuery} {
		if err := collectBuildingIDs(ctx, r.db, q, userID, set); err != nil {
			return AccessScope{}, err
		}
	}

	return AccessScope{buildings: set}, nil
}

// OwnsApartment reports whether the user owns the given non-deleted
// apartment. Used by handlers that allow apartment owners to act without a
// Manager role.
func (r *Resolver) OwnsApartment(ctx context.Context, userID, apartmentID int64) (bool, error) {
	const q = `
SELECT COUNT(*)
FROM apartment_owners ao
JOIN apartments a ON a.id = ao.apartment_id
WHERE ao.user_id = $1 AND ao.apartment_id = $2 AND a.is_deleted = FALSE
`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, userID, apartmentID).Scan(&n); err != nil {
		return false, fmt.Errorf("checking apartment ownership: %w", err)
	}
	return n > 0, nil
}

func collectBuildingIDs(ctx context.Context, db *sql.DB, query string, userID int64, into map[int64]struct{}) error {
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("querying building access: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning building id: %w", err)
		}
		into[id] = struct{}{}
	}
	return rows.Err()
}
