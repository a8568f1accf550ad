package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/criteria"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userColumns columnas de la tabla users en el orden que scanUser espera.
const userColumns = `id, username, email, password_hash, role,
	COALESCE(phone_number, ''), COALESCE(document_id, ''), COALESCE(document_type, ''),
	is_active, created_at, COALESCE(created_by, ''),
	updated_at, COALESCE(updated_by, ''),
	deleted_at, COALESCE(deleted_by, ''), last_login`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. Violación de unicidad -> ConflictError.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role,
			phone_number, document_id, document_type, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''))`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role,
		user.PhoneNumber, user.DocumentID, user.DocumentType,
		user.IsActive, user.CreatedAt, user.CreatedBy,
	)
	if err != nil {
		if conflict, ok := uniqueViolation(err); ok {
			return conflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario ACTIVO por ID; (nil, nil) si no existe.
func (r *UserRepo) FindByID(id string) (*entity.User, error) {
	return r.findOne("id = $1 AND is_active = true", id)
}

// FindByEmail obtiene un usuario ACTIVO por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.findOne("email = $1 AND is_active = true", email)
}

// FindByUsername obtiene un usuario ACTIVO por username; (nil, nil) si no existe.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	return r.findOne("username = $1 AND is_active = true", username)
}

func (r *UserRepo) findOne(cond string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond + ` LIMIT 1`
	user, err := scanUser(r.pool.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateByID aplica los cambios no nulos, estampa updated_at y devuelve la fila
// resultante. ErrUserNotFound si el id no existe.
func (r *UserRepo) UpdateByID(id string, changes repository.UserUpdate) (*entity.User, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if changes.Username != nil {
		add("username", *changes.Username)
	}
	if changes.Email != nil {
		add("email", *changes.Email)
	}
	if changes.PasswordHash != nil {
		add("password_hash", *changes.PasswordHash)
	}
	if changes.Role != nil {
		add("role", *changes.Role)
	}
	if changes.PhoneNumber != nil {
		add("phone_number", *changes.PhoneNumber)
	}
	if changes.DocumentID != nil {
		add("document_id", *changes.DocumentID)
	}
	if changes.DocumentType != nil {
		add("document_type", *changes.DocumentType)
	}
	if changes.IsActive != nil {
		add("is_active", *changes.IsActive)
	}
	if changes.LastLogin != nil {
		add("last_login", *changes.LastLogin)
	}
	if changes.UpdatedBy != "" {
		add("updated_by", changes.UpdatedBy)
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if conflict, ok := uniqueViolation(err); ok {
			return nil, conflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// SoftDelete marca el usuario como inactivo y estampa deleted_at/deleted_by.
func (r *UserRepo) SoftDelete(id, deletedBy string) (*entity.User, error) {
	query := `
		UPDATE users SET is_active = false, deleted_at = now(), deleted_by = NULLIF($2, '')
		WHERE id = $1 RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(context.Background(), query, id, deletedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("soft delete user: %w", err)
	}
	return user, nil
}

// FindWithCriteria ejecuta página y conteo dentro de una misma transacción
// RepeatableRead para que ambos lean el mismo snapshot.
func (r *UserRepo) FindWithCriteria(where criteria.Where, offset, limit int, orderBy string) ([]*entity.User, int, error) {
	ctx := context.Background()
	whereSQL, args := buildWhereSQL(where)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("begin criteria tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	pageQuery := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userColumns, whereSQL, orderBy, len(args)+1, len(args)+2)
	rows, err := tx.Query(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + whereSQL
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit criteria tx: %w", err)
	}
	return users, total, nil
}

// ExistsByRole indica si hay algún usuario con ese rol, activo o no.
func (r *UserRepo) ExistsByRole(role string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by role: %w", err)
	}
	return exists, nil
}

// buildWhereSQL traduce el predicado de criteria a SQL parametrizado.
// Los nombres de columna vienen del FilterSpec estático, nunca del cliente.
// Se recorre ordenado para que el SQL sea determinista.
func buildWhereSQL(where criteria.Where) (string, []any) {
	if len(where) == 0 {
		return "", nil
	}
	cols := make([]string, 0, len(where))
	for col := range where {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	terms := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		cond := where[col]
		switch cond.Operator {
		case criteria.OpILike:
			args = append(args, "%"+escapeLike(fmt.Sprint(cond.Value))+"%")
			terms = append(terms, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		default:
			args = append(args, cond.Value)
			terms = append(terms, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}

// escapeLike escapa los metacaracteres de LIKE para que el valor del filtro
// se trate como texto literal dentro del patrón.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// scanUser lee una fila con userColumns.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var updatedAt, deletedAt, lastLogin *time.Time
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.PhoneNumber, &u.DocumentID, &u.DocumentType,
		&u.IsActive, &u.CreatedAt, &u.CreatedBy,
		&updatedAt, &u.UpdatedBy,
		&deletedAt, &u.DeletedBy, &lastLogin,
	)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt = updatedAt
	u.DeletedAt = deletedAt
	u.LastLogin = lastLogin
	return &u, nil
}
