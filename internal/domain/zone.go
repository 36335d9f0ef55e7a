package domain

import "time"

// Zone 区域（barangay）登记表中的一行，水位和可用人员由每次请求提供
type Zone struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Population int       `json:"population"`
	Risk       int       `json:"risk"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
