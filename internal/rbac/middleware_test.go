package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"property-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func routerWithRoles(roles []string, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if roles != nil {
			id := auth.Identity{Subject: "1", Roles: roles}
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}, RequireAnyRole(allowed...), func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func get(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAnyRole_Allows(t *testing.T) {
	if code := get(routerWithRoles([]string{RoleAdmin, RoleHomeowner}, RoleAdmin)); code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := get(routerWithRoles([]string{RoleManager}, RoleAdmin, RoleManager)); code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_Forbidden(t *testing.T) {
	if code := get(routerWithRoles([]string{RoleHomeowner}, RoleAdmin)); code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAnyRole_NoIdentity(t *testing.T) {
	if code := get(routerWithRoles(nil, RoleAdmin)); code != 401 {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireAnyRole_UnknownRoleDenied(t *testing.T) {
	// A role name minted after this code shipped must not grant anything.
	if code := get(routerWithRoles([]string{"FacilitiesBot"}, RoleAdmin)); code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin([]string{RoleRenter, RoleAdmin}) {
		t.Fatalf("expected admin")
	}
	if IsAdmin([]string{RoleRenter}) || IsAdmin(nil) {
		t.Fatalf("expected non-admin")
	}
}
