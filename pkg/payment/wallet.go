package payment

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// Network token
// =============================================================================

// NetworkToken — токен платёжной системы (VTS/MDES) вместо номера карты.
type NetworkToken struct {
	Number         string   `json:"number"`
	HolderName     string   `json:"holder_name"`
	ExpMonth       int      `json:"exp_month"`
	ExpYear        int      `json:"exp_year"`
	Cryptogram     string   `json:"cryptogram"`
	BillingAddress *Address `json:"billing_address,omitempty"`
	ECI            string   `json:"eci,omitempty"`
}

// Validate проверяет длину токена, срок действия и криптограмму.
func (t *NetworkToken) Validate() []string {
	var errs errorList

	if n := len(stripNonDigits(t.Number)); n < 13 || n > 19 {
		errs.add("Token number must be between 13 and 19 digits")
	}
	if len(t.HolderName) > 64 {
		errs.add("Holder name must not exceed 64 characters")
	}
	if strings.TrimSpace(t.HolderName) == "" {
		errs.add("Holder name is required")
	}
	if t.ExpMonth < 1 || t.ExpMonth > 12 {
		errs.add("Expiration month must be between 1 and 12")
	}
	if t.ExpYear < 0 {
		errs.add("Expiration year must be positive")
	}
	if t.Cryptogram == "" {
		errs.add("Cryptogram is required for network tokens")
	}
	if t.BillingAddress != nil {
		errs.merge("", t.BillingAddress.Validate())
	}
	if len(t.ECI) > 2 {
		errs.add("ECI must not exceed 2 characters")
	}

	return errs.list()
}

// =============================================================================
// 3-D Secure
// =============================================================================

// AuthenticationThreeDSecure — единственный поддерживаемый тип аутентификации.
const AuthenticationThreeDSecure = "threed_secure"

// MPIThirdParty — 3DS выполнен внешним MPI.
const MPIThirdParty = "third_party"

var validThreeDSecureVersions = []string{"2.1.0", "2.2.0", "1.0"}

// ThreeDSecure — результат внешней 3DS аутентификации.
type ThreeDSecure struct {
	MPI             string `json:"mpi"`
	ECI             string `json:"eci"`
	CAVV            string `json:"cavv"`
	TransactionID   string `json:"transaction_id"`
	DSTransactionID string `json:"ds_transaction_id,omitempty"`
	Version         string `json:"version,omitempty"`
	SuccessURL      string `json:"success_url,omitempty"` // только для дебетовых карт
}

// Validate проверяет ограничения полей 3DS.
func (s *ThreeDSecure) Validate() []string {
	var errs errorList

	if len(s.MPI) > 11 {
		errs.add("MPI must not exceed 11 characters")
	}
	if s.MPI != MPIThirdParty {
		errs.add(`MPI must be "third_party"`)
	}
	if len(s.ECI) > 2 {
		errs.add("ECI must not exceed 2 characters")
	}
	if len(s.CAVV) > 256 {
		errs.add("CAVV must not exceed 256 characters")
	}
	if len(s.TransactionID) > 256 {
		errs.add("Transaction ID must not exceed 256 characters")
	}
	if len(s.DSTransactionID) > 256 {
		errs.add("DS Transaction ID must not exceed 256 characters")
	}
	if len(s.Version) > 6 {
		errs.add("Version must not exceed 6 characters")
	}
	if s.Version != "" && !oneOf(s.Version, validThreeDSecureVersions) {
		errs.add("Version must be 2.1.0, 2.2.0, or 1.0 (deprecated)")
	}
	if len(s.SuccessURL) > 512 {
		errs.add("Success URL must not exceed 512 characters")
	}

	return errs.list()
}

// Authentication — блок аутентификации держателя карты.
type Authentication struct {
	Type         string        `json:"type"`
	ThreeDSecure *ThreeDSecure `json:"threed_secure,omitempty"`
}

// NewThreeDSecureAuthentication создаёт блок аутентификации по данным 3DS.
func NewThreeDSecureAuthentication(s ThreeDSecure) *Authentication {
	return &Authentication{Type: AuthenticationThreeDSecure, ThreeDSecure: &s}
}

// Validate проверяет тип и вложенные данные 3DS.
func (a *Authentication) Validate() []string {
	var errs errorList
	if a.Type != AuthenticationThreeDSecure {
		errs.add(`Authentication type must be "threed_secure"`)
	}
	if a.ThreeDSecure == nil {
		errs.add("3D Secure data is required")
	} else {
		errs.merge("", a.ThreeDSecure.Validate())
	}
	return errs.list()
}

// =============================================================================
// Google Pay
// =============================================================================

// PayloadGooglePay — единственный поддерживаемый тип зашифрованного кошелька.
const PayloadGooglePay = "google_pay"

// GooglePayProtocolVersion — поддерживаемая версия протокола Google Pay.
const GooglePayProtocolVersion = "ECv2"

// Payload — зашифрованные данные кошелька.
type Payload struct {
	Type      string     `json:"type"`
	GooglePay *GooglePay `json:"google_pay,omitempty"`
}

// IntermediateSigningKey — промежуточный ключ подписи Google Pay.
type IntermediateSigningKey struct {
	SignedKey  string   `json:"signed_key"`
	Signatures []string `json:"signatures"`
}

// SignedMessage — расшифровываемая часть токена Google Pay.
// В payload передаётся строкой JSON (см. Encode).
type SignedMessage struct {
	EncryptedMessage   string `json:"encryptedMessage"`
	EphemeralPublicKey string `json:"ephemeralPublicKey"`
	Tag                string `json:"tag"`
}

// Encode сериализует сообщение в строку для поля signed_message.
func (m SignedMessage) Encode() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// GooglePay — токен Google Pay в формате ECv2.
type GooglePay struct {
	Signature              string                 `json:"signature"`
	IntermediateSigningKey IntermediateSigningKey `json:"intermediate_signing_key"`
	Version                string                 `json:"version"`
	SignedMessage          string                 `json:"signed_message"`
	MerchantIdentifier     string                 `json:"merchant_identifier"`
}

// Validate проверяет обязательные поля токена.
func (g *GooglePay) Validate() []string {
	var errs errorList
	if g.Signature == "" {
		errs.add("Signature is required")
	}
	if g.Version == "" {
		errs.add("Version is required")
	}
	if g.Version != GooglePayProtocolVersion {
		errs.add("Only ECv2 protocol version is supported")
	}
	if g.MerchantIdentifier == "" {
		errs.add("Merchant identifier is required")
	}
	if g.SignedMessage == "" {
		errs.add("Signed message is required")
	}
	return errs.list()
}

// Validate проверяет тип кошелька и его данные.
func (p *Payload) Validate() []string {
	var errs errorList
	if p.Type != PayloadGooglePay {
		errs.add("Currently only google_pay type is supported")
		return errs.list()
	}
	if p.GooglePay == nil {
		errs.add("Google Pay data is required when type is google_pay")
		return errs.list()
	}
	errs.merge("", p.GooglePay.Validate())
	return errs.list()
}
