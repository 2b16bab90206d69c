package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Register struct {
	Email       string `validate:"required,email"                json:"email"`
	Password    string `validate:"required"                      json:"password"`
	Name        string `validate:"required"                      json:"name"`
	Role        string `validate:"required,oneof=customer herder" json:"role"`
	PhoneNumber string `validate:"required"                      json:"phoneNumber"`
	Location    string `validate:"required"                      json:"location"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).
		Str("password", "****").
		Str("name", r.Name).
		Str("role", r.Role).
		Str("phoneNumber", r.PhoneNumber).
		Str("location", r.Location)
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "****"
	type R Register
	return json.Marshal(R(r))
}

type Login struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "****")
}

func (l Login) MarshalJSON() ([]byte, error) {
	l.Password = "****"
	type L Login
	return json.Marshal(L(l))
}

type UpdateProfile struct {
	Name        string `validate:"required" json:"name"`
	PhoneNumber string `validate:"required" json:"phoneNumber"`
	Location    string `validate:"required" json:"location"`
}

type UpdateRole struct {
	Role string `validate:"required,oneof=customer herder admin" json:"role"`
}
