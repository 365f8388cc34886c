package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ray-remotestate/enfes/config"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/database/dbhelper"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/models"
	"github.com/ray-remotestate/enfes/utils"
	"github.com/sirupsen/logrus"
)

const refreshCookie = "refresh_token"

func Register(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	name, email, password := in["name"], strings.TrimSpace(in["email"]), in["password"]
	redirectTo := safeRedirect(in["redirectTo"], "/")

	if name == "" || email == "" || password == "" {
		authFailure(w, r, "/join", redirectTo, http.StatusBadRequest, "all fields are required")
		return
	}

	if len(password) < 6 {
		authFailure(w, r, "/join", redirectTo, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	exists, err := dbhelper.IsUserExists(r.Context(), email)
	if err != nil {
		logrus.WithError(err).Error("failed to check user existence")
		http.Error(w, "failed to check user existence", http.StatusInternalServerError)
		return
	}
	if exists {
		authFailure(w, r, "/join", redirectTo, http.StatusConflict, "user already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	var userID uuid.UUID
	roles := []string{string(models.RoleUser)}
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		userID, err = dbhelper.CreateUser(tx, name, email, hashedPassword)
		if err != nil {
			return err
		}
		return dbhelper.AssignRole(tx, userID, models.RoleUser)
	})
	if isUniqueViolation(txErr) {
		authFailure(w, r, "/join", redirectTo, http.StatusConflict, "user already exists")
		return
	}
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to register user")
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	if err := startSession(w, userID, roles); err != nil {
		logrus.WithError(err).Error("failed to generate token")
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondCreated(w, r, map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"name":    name,
		"roles":   roles,
	}, redirectTo)
}

func Login(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	email, password := strings.TrimSpace(in["email"]), in["password"]
	redirectTo := safeRedirect(in["redirectTo"], "/")

	if email == "" || password == "" {
		authFailure(w, r, "/login", redirectTo, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := dbhelper.GetUserByPassword(r.Context(), email, password)
	if errors.Is(err, dbhelper.ErrIncorrectPassword) || (err == nil && user == nil) {
		authFailure(w, r, "/login", redirectTo, http.StatusUnauthorized, "invalid credentials")
		return
	} else if err != nil {
		logrus.WithError(err).Error("failed to look up user")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	roles, err := dbhelper.GetUserRolesByUserID(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}
	if len(roles) == 0 {
		http.Error(w, "no roles assigned", http.StatusForbidden)
		return
	}

	if err := startSession(w, user.ID, roles); err != nil {
		http.Error(w, "failed to generate tokens", http.StatusInternalServerError)
		return
	}

	if !wantsJSON(r) {
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"roles":   roles,
		"message": "Successfully logged in",
	})
}

// RefreshToken issues a new session from the refresh cookie, re-reading roles from the store.
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil {
		http.Error(w, "refresh token missing", http.StatusUnauthorized)
		return
	}

	userID, err := utils.ParseRefreshToken(cookie.Value)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	user, err := dbhelper.GetUserProfile(r.Context(), userID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	if err := startSession(w, user.ID, user.Roles); err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": user.ID,
		"roles":   user.Roles,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{middlewares.SessionCookie, refreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   config.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
		})
	}

	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	})
}

func startSession(w http.ResponseWriter, userID uuid.UUID, roles []string) error {
	sessionToken, refreshToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    sessionToken,
		HttpOnly: true,
		Secure:   config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(utils.SessionTTL),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		HttpOnly: true,
		Secure:   config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(utils.RefreshTTL),
	})
	return nil
}

// authFailure sends form users back to the form with the message; JSON clients get the status.
func authFailure(w http.ResponseWriter, r *http.Request, form, redirectTo string, status int, message string) {
	if wantsJSON(r) {
		respondJSON(w, status, map[string]string{"error": message})
		return
	}
	q := url.Values{}
	q.Set("error", message)
	q.Set("redirectTo", redirectTo)
	http.Redirect(w, r, form+"?"+q.Encode(), http.StatusSeeOther)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
