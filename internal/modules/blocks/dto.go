package blocks

type CreateBlockRequest struct {
	FromDate string  `json:"from_date"`
	ToDate   string  `json:"to_date"`
	Reason   *string `json:"reason"`
}

type CreateBlockResponse struct {
	ID int64 `json:"id"`
}

type ConflictDetails struct {
	ID       int64  `json:"id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}
