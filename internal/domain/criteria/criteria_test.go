package criteria_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/usuarios-api/internal/domain/criteria"
)

var testSpec = criteria.FilterSpec{
	"username":  {Column: "username", Operator: criteria.OpILike},
	"email":     {Column: "email", Operator: criteria.OpILike},
	"role":      {Column: "role", Operator: criteria.OpEquals},
	"is_active": {Column: criteria.ActiveColumn, Operator: criteria.OpEquals},
}

func TestBuildWhere_SinFiltroActivo_FuerzaActiveTrue(t *testing.T) {
	where := criteria.BuildWhere(testSpec, map[string]any{"role": "vendedor"})

	assert.Equal(t, criteria.Condition{Operator: criteria.OpEquals, Value: true}, where["is_active"])
	assert.Equal(t, criteria.Condition{Operator: criteria.OpEquals, Value: "vendedor"}, where["role"])
	assert.Len(t, where, 2)
}

func TestBuildWhere_ActiveFalseExplicito_SeRespeta(t *testing.T) {
	where := criteria.BuildWhere(testSpec, map[string]any{"is_active": false})

	assert.Equal(t, criteria.Condition{Operator: criteria.OpEquals, Value: false}, where["is_active"])
	assert.Len(t, where, 1)
}

func TestBuildWhere_AusenteSeOmite_PresenteVacioSeIncluye(t *testing.T) {
	// "email" ausente no genera término; "username" presente con cadena vacía sí.
	where := criteria.BuildWhere(testSpec, map[string]any{"username": ""})

	_, hasEmail := where["email"]
	assert.False(t, hasEmail)
	assert.Equal(t, criteria.Condition{Operator: criteria.OpILike, Value: ""}, where["username"])
}

func TestBuildWhere_Idempotente(t *testing.T) {
	values := map[string]any{"username": "ali", "role": "admin", "is_active": true}

	first := criteria.BuildWhere(testSpec, values)
	second := criteria.BuildWhere(testSpec, values)

	assert.Equal(t, first, second)
}

func TestBuildPagination_Defaults(t *testing.T) {
	pag := criteria.BuildPagination(nil, nil)

	assert.Equal(t, 1, pag.Page)
	assert.Equal(t, criteria.DefaultLimit, pag.Limit)
	assert.Equal(t, 0, pag.Offset)
}

func TestBuildPagination_CeroYNegativos_SeElevanAUno(t *testing.T) {
	zero := 0
	neg := -5

	pag := criteria.BuildPagination(&zero, &neg)
	assert.Equal(t, 1, pag.Page)
	assert.Equal(t, 1, pag.Limit)
	assert.Equal(t, 0, pag.Offset)
}

func TestBuildPagination_OffsetCalculado(t *testing.T) {
	page := 3
	limit := 25

	pag := criteria.BuildPagination(&page, &limit)
	assert.Equal(t, 50, pag.Offset)
	assert.Equal(t, 25, pag.Limit)
	assert.Equal(t, 3, pag.Page)
}

func TestBuildPagination_Idempotente(t *testing.T) {
	page, limit := 2, 15
	assert.Equal(t, criteria.BuildPagination(&page, &limit), criteria.BuildPagination(&page, &limit))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, criteria.TotalPages(0, 10))
	assert.Equal(t, 1, criteria.TotalPages(1, 10))
	assert.Equal(t, 1, criteria.TotalPages(10, 10))
	assert.Equal(t, 2, criteria.TotalPages(11, 10))
}
