package api

import (
	"net/http"

	"quickbite/internal/auth"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// Register creates a student account.
func (a *API) Register(c *gin.Context) {
	var req auth.Registration
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}

	user, err := a.users.Register(req)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! Please log in.", "user": user})
}

// Login exchanges a student id and password for a bearer token.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		a.respondError(c, err)
		return
	}

	user, err := a.users.Authenticate(req.StudentID, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}
	token, expires, err := a.tokens.Issue(user)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expires,
		"user":       user,
	})
}

// Profile returns the account of the caller.
func (a *API) Profile(c *gin.Context) {
	claims, err := currentUser(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	user, err := a.users.Lookup(claims.StudentID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
