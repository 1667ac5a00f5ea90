package contact

type CreateContactRequestDTO struct {
	Name    string `json:"name"    binding:"required,min=2,max=255"`
	Email   string `json:"email"   binding:"required,email"`
	Company string `json:"company" binding:"max=255"`
	Phone   string `json:"phone"   binding:"max=64"`
	Message string `json:"message" binding:"required,min=10,max=4000"`
}
