// Package criteria construye predicados y paginación a partir de filtros
// declarativos. Es código puro: la traducción a SQL vive en infraestructura.
package criteria

// Operator operadores de comparación soportados por los filtros.
type Operator string

const (
	OpEquals Operator = "="     // igualdad exacta
	OpILike  Operator = "ILIKE" // contiene, sin distinguir mayúsculas
)

// FilterConfig asocia un campo lógico con su columna y operador.
type FilterConfig struct {
	Column   string
	Operator Operator
}

// FilterSpec mapa campo lógico -> configuración de filtro. Se declara una vez
// por entidad buscable; es estático, no se persiste.
type FilterSpec map[string]FilterConfig

// Condition término del predicado sobre una columna.
type Condition struct {
	Operator Operator
	Value    any
}

// Where predicado normalizado: columna -> condición.
type Where map[string]Condition

// ActiveColumn columna del flag de borrado lógico que el predicado fuerza a
// true cuando el caller no filtra explícitamente por ella.
const ActiveColumn = "is_active"

// BuildWhere arma el predicado desde los valores crudos del request.
//
// Solo se omiten los campos AUSENTES del mapa: un valor presente con cero
// (false, cadena vacía) sí genera término. Si nadie filtró por is_active, el
// predicado fuerza is_active=true; solo un filtro explícito puede cambiarlo.
func BuildWhere(spec FilterSpec, values map[string]any) Where {
	where := make(Where, len(spec)+1)
	for field, cfg := range spec {
		value, ok := values[field]
		if !ok {
			continue
		}
		where[cfg.Column] = Condition{Operator: cfg.Operator, Value: value}
	}
	if _, ok := where[ActiveColumn]; !ok {
		where[ActiveColumn] = Condition{Operator: OpEquals, Value: true}
	}
	return where
}

// DefaultLimit tamaño de página cuando el caller no lo indica.
const DefaultLimit = 10

// Pagination ventana de paginación normalizada.
type Pagination struct {
	Offset int
	Limit  int
	Page   int
}

// BuildPagination normaliza página y límite. nil significa ausente (aplican
// los defaults); valores cero o negativos se elevan a 1, de modo que el offset
// nunca es negativo ni la página vacía.
func BuildPagination(page, limit *int) Pagination {
	l := DefaultLimit
	if limit != nil {
		l = *limit
	}
	if l < 1 {
		l = 1
	}
	p := 1
	if page != nil {
		p = *page
	}
	if p < 1 {
		p = 1
	}
	return Pagination{
		Offset: (p - 1) * l,
		Limit:  l,
		Page:   p,
	}
}

// TotalPages calcula el total de páginas para un conteo y un límite dados.
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
