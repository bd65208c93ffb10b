// internal/app/features/accounts/types.go
package accounts

// signupRequest is the POST /register body.
type signupRequest struct {
	FullName string `json:"fullname"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	College  string `json:"college"`
}

// loginRequest is the POST /login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// verificationRequest is the POST /verification body: the identity detail a
// user files for admin review.
type verificationRequest struct {
	Major            string `json:"major"`
	Batch            string `json:"batch"`
	BirthDate        string `json:"bod"`
	StudentNumber    string `json:"sn"`
	StudentNumberURL string `json:"snUrl"`
	PurchaseProofURL string `json:"purchaseProofUrl"`
}

// profileResponse is the GET /profile payload.
type profileResponse struct {
	FullName   string `json:"fullname"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	College    string `json:"college"`
	IsVerified bool   `json:"is_verified"`
}

// changePasswordRequest is the PATCH /change-password body.
type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// forgotPasswordRequest is the POST /forgot-password body.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// verifyUserRequest is the POST /verify body (admin).
type verifyUserRequest struct {
	ID string `json:"id"`
}
