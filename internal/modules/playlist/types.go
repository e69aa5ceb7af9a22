package playlist

// SongRef identifies a catalog song picked by the client. Other fields the client
// echoes back are ignored in favour of the catalog record.
type SongRef struct {
	ID string `json:"id" binding:"required"`
}

type CreateDTO struct {
	UserID string    `json:"userId"`
	Name   string    `json:"name" binding:"required"`
	Mood   string    `json:"mood" binding:"required,mood"`
	Genre  string    `json:"genre"`
	Songs  []SongRef `json:"songs" binding:"dive"`
}

type RenameDTO struct {
	Name string `json:"name" binding:"required"`
}

type listQuery struct {
	UserID string `form:"userId"`
}
