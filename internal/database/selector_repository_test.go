package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/testgen/internal/database"
	"github.com/jonesrussell/testgen/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func selectorColumns() []string {
	return []string{
		"id", "brand_id", "page_type", "selector", "description", "status",
		"relationships", "created_at", "updated_at",
	}
}

func TestSelectorRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewSelectorRepository(sqlxDB)
	ctx := context.Background()
	now := time.Now()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successfully creates selector",
			setupMock: func() {
				mock.ExpectQuery("INSERT INTO selectors").
					WithArgs(1, "pdp", "#add-to-cart", "Add to cart button", "active", nil).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow(42, now, now))
			},
			wantErr: false,
		},
		{
			name: "database error returns error",
			setupMock: func() {
				mock.ExpectQuery("INSERT INTO selectors").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			sel := &domain.Selector{
				BrandID:     1,
				PageType:    domain.PagePDP,
				Selector:    "#add-to-cart",
				Description: "Add to cart button",
				Status:      domain.SelectorActive,
			}
			callErr := repo.Create(ctx, sel)
			if (callErr != nil) != tc.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", callErr, tc.wantErr)
			}
			if callErr == nil && sel.ID != 42 {
				t.Errorf("Create() assigned id = %d, want 42", sel.ID)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestSelectorRepository_ListActiveSelectors(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewSelectorRepository(sqlxDB)
	ctx := context.Background()
	now := time.Now()

	relJSON := []byte(`{"element_type":"interactive","parent":"#product-card"}`)

	mock.ExpectQuery("SELECT (.+) FROM selectors").
		WithArgs(1, "pdp", "active").
		WillReturnRows(sqlmock.NewRows(selectorColumns()).
			AddRow(1, 1, "pdp", "#add-to-cart", "Add to cart button", "active", relJSON, now, now).
			AddRow(2, 1, "pdp", ".product-image", "Main product image", "active", nil, now, now))

	selectors, err := repo.ListActiveSelectors(ctx, 1, domain.PagePDP)
	if err != nil {
		t.Fatalf("ListActiveSelectors() error = %v", err)
	}
	if len(selectors) != 2 {
		t.Fatalf("got %d selectors, want 2", len(selectors))
	}

	first := selectors[0]
	if first.Relationships == nil {
		t.Fatal("expected relationships to be decoded")
	}
	if first.Relationships.Parent != "#product-card" {
		t.Errorf("parent = %q, want #product-card", first.Relationships.Parent)
	}
	if first.Relationships.ElementType != domain.ElementInteractive {
		t.Errorf("element type = %q", first.Relationships.ElementType)
	}

	if selectors[1].Relationships != nil {
		t.Errorf("expected nil relationships for NULL column, got %+v", selectors[1].Relationships)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestSelectorRepository_GetByID_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewSelectorRepository(sqlxDB)

	mock.ExpectQuery("SELECT (.+) FROM selectors").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestSelectorRepository_Delete(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewSelectorRepository(sqlxDB)
	ctx := context.Background()

	testCases := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantMissing bool
	}{
		{
			name: "successfully deletes selector",
			setupMock: func() {
				mock.ExpectExec("DELETE FROM selectors").
					WithArgs(7).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing selector returns not found",
			setupMock: func() {
				mock.ExpectExec("DELETE FROM selectors").
					WithArgs(7).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:     true,
			wantMissing: true,
		},
		{
			name: "database error returns error",
			setupMock: func() {
				mock.ExpectExec("DELETE FROM selectors").
					WithArgs(7).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			callErr := repo.Delete(ctx, 7)
			if (callErr != nil) != tc.wantErr {
				t.Errorf("Delete() error = %v, wantErr %v", callErr, tc.wantErr)
			}
			if tc.wantMissing && !errors.Is(callErr, database.ErrNotFound) {
				t.Errorf("Delete() error = %v, want ErrNotFound", callErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}
