package gateway

import (
	"context"
	"fmt"

	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

type sendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

type verifyOTPRequest struct {
	PhoneNumber  string `json:"phone_number"`
	OTPCodeInput string `json:"otp_code_input"`
}

// FunctionsOTP calls the remote send and verify functions of the OTP provider.
// Each call is a single attempt.
type FunctionsOTP struct {
	client         *pkghttp.Client
	sendFunction   string
	verifyFunction string
}

// NewFunctionsOTP creates the remote OTP gateway
func NewFunctionsOTP(client *pkghttp.Client, sendFunction, verifyFunction string) *FunctionsOTP {
	return &FunctionsOTP{
		client:         client,
		sendFunction:   sendFunction,
		verifyFunction: verifyFunction,
	}
}

// Send asks the provider to deliver a code to phone
func (g *FunctionsOTP) Send(ctx context.Context, phone, name string) (*models.OTPResult, error) {
	var result models.OTPResult
	err := g.client.PostJSON(ctx, "/"+g.sendFunction, sendOTPRequest{PhoneNumber: phone, Name: name}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}
	return &result, nil
}

// Verify checks code against the one sent to phone
func (g *FunctionsOTP) Verify(ctx context.Context, phone, code string) (*models.OTPResult, error) {
	var result models.OTPResult
	err := g.client.PostJSON(ctx, "/"+g.verifyFunction, verifyOTPRequest{PhoneNumber: phone, OTPCodeInput: code}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	return &result, nil
}
