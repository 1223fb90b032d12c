package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func RegisterAuth(e *echo.Echo, accounts Accounts) {
	auth := e.Group(apiPrefix + "/auth")

	auth.POST("/login", func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		result, err := accounts.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, util.Envelope{
			"token":      result.Token,
			"expires_at": result.ExpiresAt,
			"account":    result.Account,
		})
	})

	auth.GET("/me", func(c echo.Context) error {
		account, _ := CurrentAccount(c)
		return c.JSON(http.StatusOK, util.Data("account", account))
	}, RequireAuth(accounts))
}
