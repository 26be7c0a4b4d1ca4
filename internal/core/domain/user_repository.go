package domain

import (
	"context"
	"errors"
)

// ErrDuplicateNumero is returned by UserRepository writes that hit the
// unique constraint on usuarios.numero.
var ErrDuplicateNumero = errors.New("numero already exists")

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials.
type UserRow struct {
	ID           int64
	Numero       string
	Nombre       string
	Apellido     string
	PasswordHash string
}

// Summary strips the password hash for outward use.
func (r UserRow) Summary() User {
	return User{
		ID:       r.ID,
		Numero:   r.Numero,
		Nombre:   r.Nombre,
		Apellido: r.Apellido,
	}
}

// FieldValue is one column assignment of a partial update.
type FieldValue struct {
	Column string
	Value  any
}

// UserPatch is the field mask of a partial user update: nil fields are left
// untouched.
type UserPatch struct {
	Numero       *string
	Nombre       *string
	Apellido     *string
	PasswordHash *string
}

// Fields returns the assignments present in the patch in a fixed column order.
func (p UserPatch) Fields() []FieldValue {
	fields := make([]FieldValue, 0, 4)
	if p.Numero != nil {
		fields = append(fields, FieldValue{Column: "numero", Value: *p.Numero})
	}
	if p.Nombre != nil {
		fields = append(fields, FieldValue{Column: "nombre", Value: *p.Nombre})
	}
	if p.Apellido != nil {
		fields = append(fields, FieldValue{Column: "apellido", Value: *p.Apellido})
	}
	if p.PasswordHash != nil {
		fields = append(fields, FieldValue{Column: "contrasena", Value: *p.PasswordHash})
	}
	return fields
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on SQL or pgx directly.
type UserRepository interface {
	// GetByNumero returns the user holding numero.
	// Returns (nil, nil) when no user is found.
	GetByNumero(ctx context.Context, numero string) (*UserRow, error)

	// GetByID returns the user with the given id.
	// Returns (nil, nil) when no user is found.
	GetByID(ctx context.Context, id int64) (*UserRow, error)

	// List returns every user ordered by id.
	List(ctx context.Context) ([]UserRow, error)

	// ExistsByNumero reports whether a user other than excludeID holds numero.
	// Pass excludeID 0 to check against every user.
	ExistsByNumero(ctx context.Context, numero string, excludeID int64) (bool, error)

	// Create inserts a new user and returns the generated id.
	// Returns ErrDuplicateNumero when numero is already taken.
	Create(ctx context.Context, numero, nombre, apellido, passwordHash string) (int64, error)

	// Update applies patch in a single statement and returns the number of
	// rows whose values actually changed. Returns ErrDuplicateNumero when the
	// new numero is already taken.
	Update(ctx context.Context, id int64, patch UserPatch) (int64, error)

	// Delete removes the user and returns the affected row count.
	Delete(ctx context.Context, id int64) (int64, error)
}
