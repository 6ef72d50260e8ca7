package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/Saikrishivgar/zoho-directory/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupAdminTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	directory := service.NewDirectoryService(repos.Person, repos.Location, repos.Department)
	entries := service.NewClientEntryService(repos.ClientEntry, repos.Location, repos.Department)
	media := service.NewMediaService(nil, "", "")
	catalog := service.NewCatalogService(repos.App, nil, media, "/static/")
	h := NewAdminHandler(directory, entries, catalog, media)

	r := testutil.SetupRouter()
	admin := testutil.AuthGroup(r, "/api/v1/admin")

	admin.GET("/locations", h.ListLocations)
	admin.POST("/locations", h.CreateLocation)
	admin.GET("/locations/:id", h.GetLocation)
	admin.PUT("/locations/:id", h.UpdateLocation)
	admin.DELETE("/locations/:id", h.DeleteLocation)

	admin.POST("/departments", h.CreateDepartment)
	admin.DELETE("/departments/:id", h.DeleteDepartment)

	admin.GET("/people", h.ListPeople)
	admin.POST("/people", h.CreatePerson)
	admin.PUT("/people/:id", h.UpdatePerson)
	admin.DELETE("/people/:id", h.DeletePerson)

	admin.GET("/client-entries", h.ListClientEntries)
	admin.DELETE("/client-entries/:id", h.DeleteClientEntry)

	admin.GET("/apps", h.ListApps)
	admin.POST("/apps", h.CreateApp)
	admin.GET("/apps/:id", h.GetApp)
	admin.PUT("/apps/:id", h.UpdateApp)
	admin.DELETE("/apps/:id", h.DeleteApp)
	admin.POST("/apps/:id/icon", h.UploadIcon)

	return r, db
}

func TestAdminRequiresAuth(t *testing.T) {
	r, _ := setupAdminTest(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/admin/locations", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/admin/locations", nil, "garbage-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/admin/locations", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminLocationCRUD(t *testing.T) {
	r, _ := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "POST", "/api/v1/admin/locations", map[string]string{
		"name":     "Chennai Office",
		"timezone": "Asia/Kolkata",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var createResp struct {
		Data entity.Location `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	id := createResp.Data.ID
	if id == "" {
		t.Fatal("location id should be assigned")
	}

	w = testutil.DoRequest(r, "PUT", "/api/v1/admin/locations/"+id, map[string]string{
		"name":     "Chennai HQ",
		"timezone": "Asia/Kolkata",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/admin/locations/"+id, nil, token)
	var getResp struct {
		Data entity.Location `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &getResp)
	if getResp.Data.Name != "Chennai HQ" {
		t.Errorf("expected renamed location, got %q", getResp.Data.Name)
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/admin/locations/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/admin/locations/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestAdminDeleteLocationDetachesPeople(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	loc := testutil.SeedLocation(t, db, "loc_del", "Closing Office", "UTC")
	testutil.SeedPerson(t, db, &entity.Person{
		ID: "p_left", FirstName: "Lena", LocationID: &loc.ID,
	})

	w := testutil.DoRequest(r, "DELETE", "/api/v1/admin/locations/loc_del", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", w.Code, w.Body.String())
	}

	var person entity.Person
	if err := db.First(&person, "id = ?", "p_left").Error; err != nil {
		t.Fatalf("person should survive location delete: %v", err)
	}
	if person.LocationID != nil {
		t.Errorf("location reference should be cleared, got %v", *person.LocationID)
	}
}

func TestAdminPersonUpdateKeepsCreatedAt(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "POST", "/api/v1/admin/people", map[string]interface{}{
		"first_name": "Dana",
		"last_name":  "Iyer",
		"email":      "dana@example.com",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var createResp struct {
		Data entity.Person `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &createResp)
	id := createResp.Data.ID

	w = testutil.DoRequest(r, "PUT", "/api/v1/admin/people/"+id, map[string]interface{}{
		"first_name": "Dana",
		"last_name":  "Iyer",
		"role":       "Support Lead",
		"verified":   true,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	var person entity.Person
	if err := db.First(&person, "id = ?", id).Error; err != nil {
		t.Fatalf("person missing: %v", err)
	}
	if person.Role != "Support Lead" || !person.Verified {
		t.Errorf("update not applied: %+v", person)
	}
	if person.CreatedAt.Sub(createResp.Data.CreatedAt).Abs() > time.Second {
		t.Errorf("created_at must not change on update")
	}
	if !person.UpdatedAt.After(person.CreatedAt) {
		t.Errorf("updated_at should move forward")
	}
}

func TestAdminAppSlugUnique(t *testing.T) {
	r, _ := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"slug": "crm",
		"name": "CRM",
		"tags": "Sales",
	}
	w := testutil.DoRequest(r, "POST", "/api/v1/admin/apps", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/admin/apps", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate slug should be rejected, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminListApps(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedApp(t, db, &entity.ZohoApp{
		ID: "app_mail", Slug: "mail", Name: "Mail",
		Tagline: "Company email",
		Tags:    "Comms",
	})
	testutil.SeedApp(t, db, &entity.ZohoApp{
		ID: "app_books", Slug: "books", Name: "Books",
		Tagline:     "Accounting",
		Tags:        "Finance",
		Description: "Handles email receipts",
	})

	w := testutil.DoRequest(r, "GET", "/api/v1/admin/apps", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Apps []entity.ZohoApp `json:"apps"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Apps) != 2 || resp.Data.Apps[0].Name != "Books" {
		t.Fatalf("expected both apps name-ordered, got %+v", resp.Data.Apps)
	}

	// Searches name, tagline and tags only, not the description.
	w = testutil.DoRequest(r, "GET", "/api/v1/admin/apps?q=email", nil, token)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Apps) != 1 || resp.Data.Apps[0].ID != "app_mail" {
		t.Fatalf("tagline match should find mail only, got %+v", resp.Data.Apps)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/admin/apps?q=finance", nil, token)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Apps) != 1 || resp.Data.Apps[0].ID != "app_books" {
		t.Fatalf("tag match should find books, got %+v", resp.Data.Apps)
	}
}

func TestAdminUploadWithoutObjectStorage(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedApp(t, db, &entity.ZohoApp{ID: "app_desk", Slug: "desk", Name: "Desk"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "icon.png")
	part.Write([]byte("png-bytes"))
	mw.Close()

	req, _ := http.NewRequest("POST", "/api/v1/admin/apps/app_desk/icon", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when object storage is disabled, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminGetAppBySlug(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedApp(t, db, &entity.ZohoApp{ID: "app_desk", Slug: "desk", Name: "Desk"})

	w := testutil.DoRequest(r, "GET", "/api/v1/admin/apps/desk", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("slug lookup failed: %d", w.Code)
	}
	var resp struct {
		Data entity.ZohoApp `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.ID != "app_desk" {
		t.Errorf("expected app_desk, got %q", resp.Data.ID)
	}
}

func TestAdminClientEntryListAndDelete(t *testing.T) {
	r, db := setupAdminTest(t)
	token := testutil.DefaultTestToken()

	db.Create(&entity.ClientEntry{ID: "ce_1", Name: "Acme", Email: "ops@acme.example"})
	db.Create(&entity.ClientEntry{ID: "ce_2", Name: "Globex", Email: "it@globex.example"})

	w := testutil.DoRequest(r, "GET", "/api/v1/admin/client-entries", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var listResp struct {
		Data struct {
			Items      []entity.ClientEntry `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.Data.Pagination.Total != 2 {
		t.Fatalf("expected 2 entries, got %d", listResp.Data.Pagination.Total)
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/admin/client-entries/ce_1", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", w.Code)
	}

	var count int64
	db.Model(&entity.ClientEntry{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 entry left, got %d", count)
	}
}
