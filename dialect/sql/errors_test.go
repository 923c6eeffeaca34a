package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pgError mimics the shape of lib/pq and pgx errors.
type pgError struct {
	code string
}

func (e *pgError) Error() string    { return "pq: constraint violation" }
func (e *pgError) SQLState() string { return e.code }

// myError mimics the shape of go-sql-driver/mysql errors.
type myError struct {
	number uint16
}

func (e *myError) Error() string  { return "mysql: constraint violation" }
func (e *myError) Number() uint16 { return e.number }

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg sqlstate", &pgError{code: "23505"}, true},
		{"pg other sqlstate", &pgError{code: "23503"}, false},
		{"mysql number", &myError{number: 1062}, true},
		{"mysql string fallback", errors.New("Error 1062: Duplicate entry"), true},
		{"postgres string fallback", errors.New(`duplicate key value violates unique constraint "account_pkey"`), true},
		{"sqlite string fallback", errors.New("UNIQUE constraint failed: account.id"), true},
		{"wrapped", fmt.Errorf("seed: %w", &myError{number: 1062}), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pg sqlstate", &pgError{code: "23503"}, true},
		{"mysql parent", &myError{number: 1451}, true},
		{"mysql child", &myError{number: 1452}, true},
		{"sqlite string fallback", errors.New("FOREIGN KEY constraint failed"), true},
		{"unrelated", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForeignKeyConstraintError(tt.err))
		})
	}
}

func TestIsCheckConstraintError(t *testing.T) {
	assert.True(t, IsCheckConstraintError(&pgError{code: "23514"}))
	assert.True(t, IsCheckConstraintError(&myError{number: 3819}))
	assert.True(t, IsCheckConstraintError(errors.New(`new row violates check constraint "total_positive"`)))
	assert.False(t, IsCheckConstraintError(errors.New("boom")))
}

func TestIsConstraintError(t *testing.T) {
	assert.True(t, IsConstraintError(&pgError{code: "23505"}))
	assert.True(t, IsConstraintError(&myError{number: 1452}))
	assert.False(t, IsConstraintError(nil))
	assert.False(t, IsConstraintError(errors.New("timeout")))
}
