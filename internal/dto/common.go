package dto

// ListParams defines the query parameters shared by token-paginated listings.
type ListParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}
