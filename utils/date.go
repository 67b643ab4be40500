package utils

import (
	"time"
)

const hostDateLayout = "2006-01-02 15:04:05"

func FormatDate(date time.Time) string {
	return date.Format(hostDateLayout)
}

// ParseDate reads the datetime string the host attaches to a purchase.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(hostDateLayout, date)
}

func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}
