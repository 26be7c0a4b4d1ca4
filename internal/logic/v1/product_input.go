package v1

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// productInput is a validated product write before its category is resolved.
type productInput struct {
	Nombre      string
	Precio      float64
	Descripcion string
	Category    categoryRef
}

// categoryRef is what the client said about the product's category. A
// non-nil ID links the product; otherwise Nombre is free text.
type categoryRef struct {
	ID     *int64
	Nombre string
}

// Bounds of the NUMERIC(12, 2) precio column.
const (
	maxPrice      = 9999999999.99
	priceDecimals = 2
)

func invalidData(detail string) error {
	return invalid("Datos inválidos: " + detail)
}

func parseProductInput(req domain.ProductRequest) (productInput, error) {
	if err := checkRequest(req, msgProductRequired); err != nil {
		return productInput{}, err
	}

	price, present, err := parsePrice(req.Precio)
	if !present {
		return productInput{}, invalid(msgProductRequired)
	}
	if err != nil {
		return productInput{}, err
	}

	ref, err := parseCategoryRef(req.Categoria)
	if err != nil {
		return productInput{}, err
	}
	if ref.ID == nil && req.NombreCategoria != "" {
		ref.Nombre = req.NombreCategoria
	}

	return productInput{
		Nombre:      req.Nombre,
		Precio:      price,
		Descripcion: req.Descripcion,
		Category:    ref,
	}, nil
}

// decodeLoose decodes raw keeping numbers as json.Number.
func decodeLoose(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// parsePrice accepts a JSON number or a numeric string. present is false when
// the field is absent, null or an empty string.
func parsePrice(raw json.RawMessage) (price float64, present bool, err error) {
	v, err := decodeLoose(raw)
	if err != nil {
		return 0, true, invalidData("precio no es un valor válido")
	}

	var text string
	switch p := v.(type) {
	case nil:
		return 0, false, nil
	case json.Number:
		text = p.String()
	case string:
		text = strings.TrimSpace(p)
		if text == "" {
			return 0, false, nil
		}
	default:
		return 0, true, invalidData("precio debe ser numérico")
	}

	price, err = strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, true, invalidData("precio debe ser numérico")
	}
	if price < 0 {
		return 0, true, invalidData("precio no puede ser negativo")
	}
	if price > maxPrice {
		return 0, true, invalidData("precio supera el máximo permitido")
	}
	if decimals(price) > priceDecimals {
		return 0, true, invalidData("precio admite como máximo 2 decimales")
	}
	return price, true, nil
}

// decimals counts the fractional digits of the shortest text that round-trips f.
func decimals(f float64) int {
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if _, frac, ok := strings.Cut(text, "."); ok {
		return len(frac)
	}
	return 0
}

// parseCategoryRef accepts null, a bare id (number or numeric string) or an
// object {"id": ..., "nombre": ...}.
func parseCategoryRef(raw json.RawMessage) (categoryRef, error) {
	v, err := decodeLoose(raw)
	if err != nil {
		return categoryRef{}, invalidData("categoria no es un valor válido")
	}

	switch c := v.(type) {
	case nil:
		return categoryRef{}, nil
	case map[string]any:
		var ref categoryRef
		if id, ok := c["id"]; ok {
			ref.ID, err = parseCategoryID(id)
			if err != nil {
				return categoryRef{}, err
			}
		}
		if nombre, ok := c["nombre"]; ok && nombre != nil {
			s, ok := nombre.(string)
			if !ok {
				return categoryRef{}, invalidData("el nombre de la categoría debe ser texto")
			}
			ref.Nombre = s
		}
		return ref, nil
	default:
		id, err := parseCategoryID(c)
		if err != nil {
			return categoryRef{}, err
		}
		return categoryRef{ID: id}, nil
	}
}

// parseCategoryID turns a decoded id into a positive integer. null and ""
// mean no id.
func parseCategoryID(v any) (*int64, error) {
	var text string
	switch id := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		text = id.String()
	case string:
		text = strings.TrimSpace(id)
		if text == "" {
			return nil, nil
		}
	default:
		return nil, invalidData("el id de la categoría debe ser un entero")
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n <= 0 {
		return nil, invalidData("el id de la categoría debe ser un entero positivo")
	}
	return &n, nil
}
