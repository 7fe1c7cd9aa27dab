package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/otus-hla/social-network/app/observability/metrics"
	"github.com/otus-hla/social-network/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// PGXPool is the subset of pgxpool.Pool the repository uses.
// Both *pgxpool.Pool and pgxmock satisfy it.
type PGXPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepo defines the contract for user data persistence.
type UserRepo interface {
	// InsertUser persists a new user row atomically on the write
	// primary. A duplicate id surfaces as types.ErrConflict.
	InsertUser(ctx context.Context, user *types.User) error

	// GetUserPassword returns only the stored password hash for
	// credential checks. Returns types.ErrNotFound when absent.
	GetUserPassword(ctx context.Context, id uuid.UUID) (string, error)

	// GetUser returns the full profile row.
	// Returns types.ErrNotFound when absent.
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)

	// SearchUsers returns users whose first/second names start with
	// the query prefixes (case-insensitive), ordered by id. Returned
	// rows never carry the password hash.
	SearchUsers(ctx context.Context, query types.UserSearchQuery) ([]types.UserProfile, error)
}

// PostgresUserRepo routes mutations to the write primary and lookups
// to the read handle. The read handle may point at a replica, so reads
// can lag very recent writes; callers get eventual consistency, not a
// bug.
type PostgresUserRepo struct {
	logger    *slog.Logger
	writePool PGXPool
	readPool  PGXPool
}

// NewPostgresUserRepo wires the two database handles. A nil readPool
// falls back to the write pool.
func NewPostgresUserRepo(writePool, readPool PGXPool, logger *slog.Logger) *PostgresUserRepo {
	if readPool == nil {
		readPool = writePool
	}
	return &PostgresUserRepo{
		logger:    logger,
		writePool: writePool,
		readPool:  readPool,
	}
}

// observeQuery records query duration and errors against the shared
// instruments.
func observeQuery(ctx context.Context, name string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("query", name))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *PostgresUserRepo) InsertUser(ctx context.Context, user *types.User) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "InsertUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	start := time.Now()

	_, err := r.writePool.Exec(ctx,
		`INSERT INTO users (id, password, first_name, second_name, birthdate, biography, city)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Password, user.FirstName, user.SecondName, user.Birthdate, user.Biography, user.City)
	observeQuery(ctx, "insert_user", start, err)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			span.SetStatus(codes.Error, "duplicate user id")
			return fmt.Errorf("user %s already exists: %w", user.ID, types.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *PostgresUserRepo) GetUserPassword(ctx context.Context, id uuid.UUID) (string, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserPassword", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	start := time.Now()

	var hash string
	err := r.readPool.QueryRow(ctx,
		"SELECT password FROM users WHERE id = $1", id).Scan(&hash)
	observeQuery(ctx, "get_user_password", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("user %s: %w", id, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return "", fmt.Errorf("failed to fetch password hash: %w", err)
	}

	return hash, nil
}

func (r *PostgresUserRepo) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	start := time.Now()

	var user types.User
	var firstName, secondName *string
	err := r.readPool.QueryRow(ctx,
		`SELECT id, password, first_name, second_name, birthdate, biography, city
         FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Password, &firstName, &secondName, &user.Birthdate, &user.Biography, &user.City)
	observeQuery(ctx, "get_user", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if secondName != nil {
		user.SecondName = *secondName
	}

	return &user, nil
}

func (r *PostgresUserRepo) SearchUsers(ctx context.Context, query types.UserSearchQuery) ([]types.UserProfile, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "SearchUsers", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()
	start := time.Now()

	// The password column is deliberately absent from the projection.
	rows, err := r.readPool.Query(ctx,
		`SELECT id, first_name, second_name, birthdate, biography, city
         FROM users
         WHERE LOWER(first_name) LIKE LOWER($1) AND LOWER(second_name) LIKE LOWER($2)
         ORDER BY id`,
		query.FirstName+"%", query.LastName+"%")
	if err != nil {
		observeQuery(ctx, "search_users", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	profiles := []types.UserProfile{}
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.SecondName, &u.Birthdate, &u.Biography, &u.City); err != nil {
			observeQuery(ctx, "search_users", start, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "scan failed")
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		profiles = append(profiles, u.Profile())
	}
	if err := rows.Err(); err != nil {
		observeQuery(ctx, "search_users", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rows iteration failed")
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	observeQuery(ctx, "search_users", start, nil)

	return profiles, nil
}
