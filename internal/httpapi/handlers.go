package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"property-platform/internal/auth"
	"property-platform/internal/invitations"
	"property-platform/internal/patch"
	"property-platform/internal/rbac"
	"property-platform/internal/scope"
	"property-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection. Keep these thin:
// parse/validate input, call internal services, return JSON. All
// dependencies are injected here — nothing is fetched from ambient storage.
type Handlers struct {
	Auth    *auth.Manager
	Users   *users.Service
	Scope   *scope.Resolver
	Invites *invitations.Store
}

const minPasswordLen = 8

/* ===================== AUTH ===================== */

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// Password policy lives here, not in the hasher.
	if len(req.Password) < minPasswordLen {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		return
	}

	u, _, err := h.Users.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, users.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email, name and password required"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, u.Public())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, roles, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			// Same body for unknown email and wrong password.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := h.Auth.Issue(time.Now(), u.ID, u.Email, u.Name, roles)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

/* ===================== PROFILE ===================== */

func (h Handlers) Me(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": id.Subject,
		"email":   id.Email,
		"name":    id.Name,
		"roles":   id.Roles,
	})
}

type updateMeRequest struct {
	Name patch.Field[string] `json:"name"`
}

// UpdateMe applies a partial profile update. Every field is tri-state:
// absent leaves it alone, null asks for a clear, a value sets it.
func (h Handlers) UpdateMe(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := id.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	switch req.Name.State() {
	case patch.Unchanged:
		// Nothing to do.
	case patch.Clear:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name cannot be cleared"})
		return
	case patch.Set:
		name, _ := req.Name.Value()
		if err := h.Users.UpdateName(c.Request.Context(), userID, name); err != nil {
			if errors.Is(err, users.ErrInvalidArgument) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
	}

	u, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

/* ===================== ACCESS SCOPE ===================== */

// MyBuildings returns the caller's resolved building scope. The scope is
// computed fresh on every request; it is never cached.
func (h Handlers) MyBuildings(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := id.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	s, err := h.Scope.Resolve(c.Request.Context(), userID, rbac.IsAdmin(id.Roles))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "scope resolution failed"})
		return
	}
	if s.IsUnrestricted() {
		c.JSON(http.StatusOK, gin.H{"unrestricted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unrestricted": false, "building_ids": s.BuildingIDs()})
}

/* ===================== INVITATIONS ===================== */

type inviteRequest struct {
	Email string `json:"email"`
}

// InviteRenter invites an email address to become a renter of an apartment.
// Allowed for Admin/Manager, or for the apartment's owner.
func (h Handlers) InviteRenter(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := id.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	apartmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid apartment id"})
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}

	if !id.HasAnyRole(rbac.RoleAdmin, rbac.RoleManager) {
		owns, err := h.Scope.OwnsApartment(c.Request.Context(), userID, apartmentID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ownership check failed"})
			return
		}
		if !owns {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}

	token, err := h.Invites.Create(c.Request.Context(), apartmentID, email, userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invitation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// AcceptInvitation consumes an invitation token and activates the tenancy.
// The token is single-use; the invited email must match the caller's.
func (h Handlers) AcceptInvitation(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := id.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token := c.Param("token")
	inv, err := h.Invites.Get(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invitation lookup failed"})
		return
	}

	// Wrong caller does not burn the token; the invitee can still use it.
	if !strings.EqualFold(inv.Email, id.Email) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	// Consume the token. A concurrent accept loses here.
	inv, err = h.Invites.Accept(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invitation lookup failed"})
		return
	}

	if err := h.Users.AssignRenter(c.Request.Context(), userID, inv.ApartmentID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "tenancy assignment failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartment_id": inv.ApartmentID})
}
