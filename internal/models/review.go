package models

// Review maps the source rows of the reviews table for seeding. The
// Embedding column and the derived label projections are owned by the
// database and are not written from here.
type Review struct {
	Score   int    `gorm:"column:Score"`
	Summary string `gorm:"column:Summary"`
	Text    string `gorm:"column:Text"`
	UserID  string `gorm:"column:UserId"`
}

func (Review) TableName() string {
	return "Reviews"
}
