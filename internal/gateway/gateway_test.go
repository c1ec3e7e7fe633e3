package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-records/internal/config"
	"student-records/internal/database"
	"student-records/internal/logger"
	"student-records/internal/models"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	db, dialect, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}, logger.NoOpLogger{})
	require.NoError(t, err)

	g := New(db, dialect, logger.NoOpLogger{})
	t.Cleanup(func() { g.Close() })
	return g
}

func seed(t *testing.T, g *Gateway, recs ...models.StudentRecord) {
	t.Helper()
	for _, r := range recs {
		require.NoError(t, g.Add(context.Background(), r))
	}
}

var (
	asha  = models.StudentRecord{RollNo: 1, Name: "Asha", FathersName: "Ravi", Subject: "Maths", Grade: "A"}
	bilal = models.StudentRecord{RollNo: 2, Name: "Bilal", FathersName: "Karim", Subject: "Physics", Grade: "A"}
	chen  = models.StudentRecord{RollNo: 3, Name: "Chen", FathersName: "Wei", Subject: "Maths", Grade: "B"}
)

func TestAddThenFetchAll(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	seed(t, g, chen, asha)

	all, err = g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{asha, chen}, all)
}

func TestAddDuplicateRollNo(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	dup := asha
	dup.Name = "Someone Else"
	err := g.Add(ctx, dup)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRollNo)
	assert.Equal(t, KindDuplicate, KindOf(err))

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{asha}, all)
}

func TestUpdateField(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha, bilal)

	require.NoError(t, g.UpdateField(ctx, asha.RollNo, models.FieldGrade, "C"))

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)

	want := asha
	want.Grade = "C"
	assert.Equal(t, []models.StudentRecord{want, bilal}, all)
}

func TestUpdateFieldEachColumn(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	for _, f := range models.UpdatableFields {
		require.NoError(t, g.UpdateField(ctx, asha.RollNo, f, "new-"+f.String()))
	}

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.StudentRecord{
		RollNo:      1,
		Name:        "new-name",
		FathersName: "new-fathersName",
		Subject:     "new-subject",
		Grade:       "new-grade",
	}, all[0])
}

func TestUpdateFieldRejectsNonWhitelisted(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	for _, f := range []models.Field{models.FieldRollNo, models.Field(99), models.Field(-1)} {
		err := g.UpdateField(ctx, asha.RollNo, f, "7")
		assert.ErrorIs(t, err, ErrInvalidField)
		assert.Equal(t, KindInvalidField, KindOf(err))
	}

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{asha}, all)
}

func TestUpdateFieldMissingRecord(t *testing.T) {
	g := newTestGateway(t)
	err := g.UpdateField(context.Background(), 404, models.FieldName, "x")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateFieldSameValue(t *testing.T) {
	g := newTestGateway(t)
	seed(t, g, asha)

	assert.NoError(t, g.UpdateField(context.Background(), asha.RollNo, models.FieldGrade, asha.Grade))
}

func TestDeleteByRollNo(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha, bilal, chen)

	require.NoError(t, g.DeleteByRollNo(ctx, bilal.RollNo))

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{asha, chen}, all)
}

func TestDeleteMissingRollNo(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	err := g.DeleteByRollNo(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	all, err := g.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{asha}, all)
}

func TestSearchBy(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	twin := models.StudentRecord{RollNo: 4, Name: "Asha", FathersName: "Mohan", Subject: "Biology", Grade: "B"}
	seed(t, g, asha, bilal, chen, twin)

	tests := []struct {
		name  string
		field models.Field
		value string
		want  []models.StudentRecord
	}{
		{"by name", models.FieldName, "Asha", []models.StudentRecord{asha, twin}},
		{"by subject", models.FieldSubject, "Maths", []models.StudentRecord{asha, chen}},
		{"by roll", models.FieldRollNo, "2", []models.StudentRecord{bilal}},
		{"by roll padded", models.FieldRollNo, " 3 ", []models.StudentRecord{chen}},
		{"no match", models.FieldName, "Zed", []models.StudentRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.SearchBy(ctx, tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchByRejectsNonWhitelisted(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	for _, f := range []models.Field{models.FieldGrade, models.FieldFathersName, models.Field(12)} {
		got, err := g.SearchBy(ctx, f, "A")
		assert.Empty(t, got)
		assert.NotNil(t, got)
		assert.ErrorIs(t, err, ErrInvalidField)
	}
}

func TestSearchByRollNoNotInteger(t *testing.T) {
	g := newTestGateway(t)

	got, err := g.SearchBy(context.Background(), models.FieldRollNo, "abc")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, KindInvalidValue, KindOf(err))
}

func TestSearchValueIsNotInterpolated(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha)

	got, err := g.SearchBy(ctx, models.FieldName, "x' OR '1'='1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGradeDistribution(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()
	seed(t, g, asha, bilal, chen)

	dist, err := g.GradeDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.GradeCount{{Grade: "A", Count: 2}, {Grade: "B", Count: 1}}, dist)
}

func TestGradeDistributionEmpty(t *testing.T) {
	g := newTestGateway(t)

	dist, err := g.GradeDistribution(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dist)
}

func TestCloseIsIdempotent(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	all, err := g.FetchAll(ctx)
	assert.Empty(t, all)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, g.Add(ctx, asha), ErrClosed)
}

func TestErrorFormatting(t *testing.T) {
	err := opError("add student", KindDuplicate, ErrDuplicateRollNo)

	assert.Equal(t, "add student: a student with this roll number already exists", err.Error())
	assert.Equal(t, KindDatabase, KindOf(errors.New("plain")))
	assert.Equal(t, "duplicate", KindDuplicate.String())
}
