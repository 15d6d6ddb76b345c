package repositories

// ListParams carries the parsed list-query intent down to SQL building.
// Empty fields mean "no constraint".
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	SortDir   string
	Search    string
	Status    string
	From      string // "YYYY-MM-DD HH:MM:SS", inclusive
	To        string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.SortDir != "asc" {
		p.SortDir = "desc"
	}
	return p
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}
