package request

import "time"

type ListMatchesQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
}

type AvailabilityQuery struct {
	BarID  string `form:"barId" binding:"required"`
	People int    `form:"people" binding:"required,gt=0"`
}
