package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/models"
)

// DefaultUserRole is assigned to self-registered accounts
const DefaultUserRole = "officer"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Tokens *api.Tokens
}

// RegisterHandler creates a user account with a bcrypt hashed password
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Invalid request body", http.StatusBadRequest, w, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if fields := invalidFields(req); len(fields) > 0 {
		config.WriteError(w, http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid fields: " + strings.Join(fields, ", "),
			Code:    http.StatusBadRequest,
		})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := a.DB.FindByEmail(ctx, req.Email)
	if err == nil {
		config.ErrorStatus("Email already registered", http.StatusConflict, w, nil)
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check email", http.StatusInternalServerError, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         DefaultUserRole,
		CreatedAt:    primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := a.DB.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("Email already registered", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("user registered", "userID", user.ID.Hex())
	api.WriteJSON(w, http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "User registered",
		Data:    user,
	})
}

// LoginHandler verifies the credentials and issues an access token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("Invalid request body", http.StatusBadRequest, w, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fields := invalidFields(req); len(fields) > 0 {
		config.WriteError(w, http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid fields: " + strings.Join(fields, ", "),
			Code:    http.StatusBadRequest,
		})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("Invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get user by email", http.StatusInternalServerError, w, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		config.ErrorStatus("Invalid credentials", http.StatusUnauthorized, w, err)
		return
	}

	token, err := a.Tokens.Issue(*user)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    models.LoginResponse{Token: token, User: *user},
	})
}

func invalidFields(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
