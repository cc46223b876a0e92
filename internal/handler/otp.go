package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

type OTPHandler struct {
	OTP *service.OTP
}

func NewOTPHandler(otp *service.OTP) *OTPHandler {
	if otp == nil {
		panic("nil service passed to NewOTPHandler")
	}
	return &OTPHandler{OTP: otp}
}

func (h *OTPHandler) Generate(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.OTP.Generate(ctx, req.Email); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP generated and sent to your email"})
}

func (h *OTPHandler) Verify(c echo.Context) error {
	var req struct {
		Email   string `json:"email"`
		OTPCode string `json:"otp_code"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.OTP.Verify(ctx, req.Email, req.OTPCode); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified successfully"})
}
