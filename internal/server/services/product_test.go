package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mpetrenko/prodstore/internal/common"
	"github.com/mpetrenko/prodstore/internal/server/models"
)

func newProductService(repo *fakeProductsRepo) *ProductService {
	return NewProductService(nil, &fakeRepoManager{p: repo})
}

func TestProductCreate_StampsCallerAsOwner(t *testing.T) {
	repo := &fakeProductsRepo{}
	svc := newProductService(repo)

	p, err := svc.Create(context.Background(), 1, "Widget", "caller-a")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.UserID != "caller-a" {
		t.Fatalf("owner must come from the caller identity, got %q", p.UserID)
	}
}

func TestProductCreate_EmptyTitle(t *testing.T) {
	repo := &fakeProductsRepo{}
	svc := newProductService(repo)

	_, err := svc.Create(context.Background(), 1, "", "caller-a")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("no write must occur on validation failure")
	}
}

func TestProductUpdate_TransfersOwnershipToCaller(t *testing.T) {
	repo := &fakeProductsRepo{byID: map[int64]*models.Product{
		1: {ID: 1, Title: "Widget", UserID: "user-a"},
	}}
	svc := newProductService(repo)

	updated, err := svc.Update(context.Background(), 1, "Renamed", "user-b")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated: %+v", updated)
	}
	if updated.UserID != "user-b" {
		t.Fatalf("update must re-stamp the owner to the caller, got %q", updated.UserID)
	}
	if repo.byID[1].UserID != "user-b" {
		t.Fatalf("persisted owner mismatch: %+v", repo.byID[1])
	}
}

func TestProductUpdate_MissingProduct_NoWrite(t *testing.T) {
	repo := &fakeProductsRepo{}
	svc := newProductService(repo)

	_, err := svc.Update(context.Background(), 404, "Renamed", "user-b")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("update of a missing product must fail before any write")
	}
}

func TestProductUpdate_EmptyTitle(t *testing.T) {
	repo := &fakeProductsRepo{byID: map[int64]*models.Product{
		1: {ID: 1, Title: "Widget", UserID: "user-a"},
	}}
	svc := newProductService(repo)

	_, err := svc.Update(context.Background(), 1, "", "user-b")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
	if repo.byID[1].UserID != "user-a" {
		t.Fatalf("owner must be untouched on validation failure")
	}
}

func TestProductGet_NotFound(t *testing.T) {
	svc := newProductService(&fakeProductsRepo{})

	_, err := svc.Get(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestProductList_ReturnsAll(t *testing.T) {
	repo := &fakeProductsRepo{byID: map[int64]*models.Product{
		1: {ID: 1, Title: "Widget", UserID: "user-a"},
		2: {ID: 2, Title: "Gadget", UserID: "user-b"},
	}}
	svc := newProductService(repo)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
}
