package feedback

type SubmitDTO struct {
	Message string `json:"message" binding:"required"`
	Subject string `json:"subject" binding:"max=200"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}
