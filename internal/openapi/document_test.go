package openapi

import "testing"

func TestAddRouteRecordsOperations(t *testing.T) {
	doc := NewDocument("Site API", "1.0.0")
	doc.AddBearerScheme("bearer")
	doc.AddRoute("GET /api/site/{module}", "public", "")
	doc.AddRoute("PUT /admin/api/settings/{module}", "admin", "bearer")
	doc.AddRoute("/no-method", "public", "")

	if got := doc.PathKeys(); len(got) != 2 {
		t.Fatalf("expected 2 paths got %v", got)
	}
	get := doc.Paths["/api/site/{module}"]["get"]
	if get.OperationID != "getApiSiteModule" {
		t.Fatalf("unexpected operation id %q", get.OperationID)
	}
	if len(get.Parameters) != 1 || get.Parameters[0].Name != "module" || !get.Parameters[0].Required {
		t.Fatalf("expected module path parameter got %+v", get.Parameters)
	}
	if len(get.Security) != 0 {
		t.Fatalf("public route should not require security")
	}
	put := doc.Paths["/admin/api/settings/{module}"]["put"]
	if len(put.Security) != 1 {
		t.Fatalf("admin route should require bearer security")
	}
	if _, ok := doc.Components.SecuritySchemes["bearer"]; !ok {
		t.Fatalf("expected bearer security scheme")
	}
}

func TestOperationIDHandlesPunctuation(t *testing.T) {
	if got := operationID("get", "/sitemap.xml"); got != "getSitemapXml" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := operationID("post", "/admin/api/seo/meta-description"); got != "postAdminApiSeoMetaDescription" {
		t.Fatalf("unexpected id %q", got)
	}
}
