package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockCartRepo(t *testing.T) (*CartRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewCartRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestCartRepository_ListByUser(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "product_id", "name", "price", "quantity", "total_price", "image_url"}).
		AddRow(1, 10, "Aviator", 1200.0, 2, 2400.0, "img/aviator.jpg").
		AddRow(2, 11, "Wayfarer", 900.0, 1, 900.0, "")
	mock.ExpectQuery(regexp.QuoteMeta(selectCartByUserSQL)).
		WithArgs(5).
		WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].TotalPrice != 2400.0 || items[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Name != "Wayfarer" || items[1].ImageURL != "" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestCartRepository_ListByUser_Empty(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectCartByUserSQL)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "price", "quantity", "total_price", "image_url"}))

	items, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Empty cart must come back as an empty slice, not nil, so the API
	// layer serializes it as [].
	if items == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(items))
	}
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantErr    error
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updateCartQuantitySQL)).
					WithArgs(3, 9, 5).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "row not found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updateCartQuantitySQL)).
					WithArgs(3, 9, 5).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrCartRowNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockCartRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := repo.UpdateQuantity(context.Background(), 5, 9, 3)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCartRepository_Remove(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteCartItemSQL)).
		WithArgs(9, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Remove(context.Background(), 5, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCartRepository_Remove_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteCartItemSQL)).
		WithArgs(9, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Remove(context.Background(), 5, 9); !errors.Is(err, ErrCartRowNotFound) {
		t.Fatalf("expected ErrCartRowNotFound, got %v", err)
	}
}

func TestCartRepository_Clear(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(clearCartSQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.Clear(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCartRepository_Add(t *testing.T) {
	repo, mock, cleanup := newMockCartRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertCartItemSQL)).
		WithArgs(5, 10, 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Add(context.Background(), 5, 10, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
