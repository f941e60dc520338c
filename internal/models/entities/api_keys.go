package entities

type ApiKey struct {
	ApiKey string `db:"id"`
	UserID string `db:"user_id"`
	Status bool   `db:"status"`
}
