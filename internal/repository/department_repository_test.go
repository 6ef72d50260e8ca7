package repository

import (
	"context"
	"testing"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"github.com/Saikrishivgar/zoho-directory/internal/testutil"
)

func TestDepartmentDeleteDetachesReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewDepartmentRepository(db)
	ctx := context.Background()

	eng := testutil.SeedDepartment(t, db, "dep_eng", "Engineering", nil)
	testutil.SeedDepartment(t, db, "dep_plat", "Platform", &eng.ID)
	testutil.SeedPerson(t, db, &entity.Person{
		ID: "p_dev", FirstName: "Dev", DepartmentID: &eng.ID,
	})
	db.Create(&entity.ClientEntry{
		ID: "ce_eng", Name: "Acme", Email: "ops@acme.example", DepartmentID: &eng.ID,
	})

	if err := repo.Delete(ctx, "dep_eng"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "dep_eng"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var child entity.Department
	if err := db.First(&child, "id = ?", "dep_plat").Error; err != nil {
		t.Fatalf("child department should survive: %v", err)
	}
	if child.ParentID != nil {
		t.Errorf("child parent reference should be cleared, got %v", *child.ParentID)
	}

	var person entity.Person
	db.First(&person, "id = ?", "p_dev")
	if person.DepartmentID != nil {
		t.Errorf("person department reference should be cleared")
	}

	var entry entity.ClientEntry
	db.First(&entry, "id = ?", "ce_eng")
	if entry.DepartmentID != nil {
		t.Errorf("client entry department reference should be cleared")
	}
}

func TestDepartmentListOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewDepartmentRepository(db)
	ctx := context.Background()

	testutil.SeedDepartment(t, db, "dep_sales", "Sales", nil)
	testutil.SeedDepartment(t, db, "dep_eng", "Engineering", nil)

	departments, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(departments) != 2 || departments[0].Name != "Engineering" {
		t.Fatalf("expected name-ordered list, got %+v", departments)
	}
}
