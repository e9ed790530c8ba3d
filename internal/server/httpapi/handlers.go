package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Please fill all fields.")
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			errorJSON(c, http.StatusBadRequest, "Please fill all fields.")
		case errors.Is(err, common.ErrorDuplicateEmail):
			errorJSON(c, http.StatusConflict, "Email already registered!")
		default:
			s.logger.Error(c.Request.Context(), "registration failed", "error", err)
			errorJSON(c, http.StatusInternalServerError, "Server Error!")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials!")
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			errorJSON(c, http.StatusUnauthorized, "Invalid credentials!")
		} else {
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			errorJSON(c, http.StatusInternalServerError, "Server Error!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Public()})
}

func (s *Server) handleDashboard(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome " + user.UserName,
		"user":    user.Public(),
	})
}

func (s *Server) handlePayment(c *gin.Context) {
	var sub services.PaymentSubmission
	if err := json.NewDecoder(c.Request.Body).Decode(&sub); err != nil {
		errorJSON(c, http.StatusBadRequest, "Please fill all payment fields!")
		return
	}

	user := currentUser(c)
	payment, err := s.payments.Submit(c.Request.Context(), user.ID, &sub)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			errorJSON(c, http.StatusBadRequest, validationMessage(ve))
		case errors.Is(err, common.ErrDuplicateTransaction):
			errorJSON(c, http.StatusConflict, "Transaction ID already submitted!")
		default:
			s.logger.Error(c.Request.Context(), "payment submission failed", "error", err)
			errorJSON(c, http.StatusInternalServerError, "Server Error during payment submission!")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Payment submitted and saved successfully!",
		"paymentId": payment.ID,
	})
}

func (s *Server) handleLastPayment(c *gin.Context) {
	user := currentUser(c)

	payment, err := s.payments.LastPayment(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			errorJSON(c, http.StatusNotFound, "No payments found")
		} else {
			s.logger.Error(c.Request.Context(), "last payment lookup failed", "error", err)
			errorJSON(c, http.StatusInternalServerError, "Server Error!")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// validationMessage maps a validator rejection to the user-facing message.
// The field itself is safe to show.
func validationMessage(ve *common.ValidationError) string {
	switch ve.Reason {
	case "required":
		return "Please fill all payment fields!"
	case "invalid phone":
		return "Invalid mobile number: " + ve.Field
	case "invalid amount":
		return "Invalid amount: " + ve.Field
	case "charge mismatch":
		return "Amount calculation mismatch"
	default:
		return ve.Error()
	}
}
