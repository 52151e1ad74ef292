package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"holder@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"s3cure-pa55word"`
	FullName string `json:"full_name" validate:"required" example:"Maria Souza"`
	Document string `json:"document" validate:"omitempty,max=18" example:"12345678901"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"holder@example.com"`
	Password string `json:"password" validate:"required" example:"s3cure-pa55word"`
}

type AuthResponseDTO struct {
	AccountUUID string `json:"account_uuid" example:"a908f2a7-0d0e-4b9f-bd01-5fcf8c9d3f1f"`
	Token       string `json:"token"`
	Role        string `json:"role" example:"HOLDER"`
}

type AccountResponseDTO struct {
	UUID      string `json:"uuid" example:"a908f2a7-0d0e-4b9f-bd01-5fcf8c9d3f1f"`
	Email     string `json:"email" example:"holder@example.com"`
	FullName  string `json:"full_name" example:"Maria Souza"`
	Role      string `json:"role" example:"HOLDER"`
	Status    string `json:"status" example:"ACTIVE"`
	CreatedAt string `json:"created_at" example:"2024-09-01T12:00:00Z"`
}
