package domain

import "encoding/json"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Numero     string `json:"numero" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register and POST /usuarios.
type RegisterRequest struct {
	Numero     string `json:"numero" validate:"required"`
	Nombre     string `json:"nombre" validate:"required"`
	Apellido   string `json:"apellido" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required,min=6,maxbytes=72"`
}

// UserUpdateRequest is the body of PUT /usuarios/:id. Absent fields stay
// unchanged; an empty contrasena counts as absent.
type UserUpdateRequest struct {
	Numero     *string `json:"numero" validate:"omitempty,min=1"`
	Nombre     *string `json:"nombre" validate:"omitempty,min=1"`
	Apellido   *string `json:"apellido" validate:"omitempty,min=1"`
	Contrasena *string `json:"contrasena"`
}

// User is the outward user summary; it never carries the password hash.
type User struct {
	ID       int64  `json:"id"`
	Numero   string `json:"numero"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"access_token"`
	User    User   `json:"usuario"`
}

// CategoryRequest is the body of category writes.
type CategoryRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type Category struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// ProductRequest is the body of product writes.
//
// Precio may be a JSON number or a numeric string. Categoria may be a bare id
// (number or numeric string) or an object {"id": ..., "nombre": ...}. Both are
// kept raw and coerced by the Logic layer so that bad input is reported as a
// validation failure rather than a decoding error.
type ProductRequest struct {
	Nombre          string          `json:"nombre" validate:"required"`
	Precio          json.RawMessage `json:"precio"`
	Descripcion     string          `json:"descripcion"`
	Categoria       json.RawMessage `json:"categoria"`
	NombreCategoria string          `json:"nombre_categoria"`
}

// Product mirrors a productos row. NombreCategoria is a snapshot of the
// category name taken when the product was last written.
type Product struct {
	ID              int64   `json:"id"`
	Nombre          string  `json:"nombre"`
	Precio          float64 `json:"precio"`
	Descripcion     string  `json:"descripcion"`
	CategoriaID     *int64  `json:"categoria_id"`
	NombreCategoria string  `json:"nombre_categoria"`
}
