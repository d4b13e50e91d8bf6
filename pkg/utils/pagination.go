package utils

func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// TotalPages is ceil(total/limit); 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Percent is round(100*part/whole), 0 when whole is 0.
func Percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int((200*part + whole) / (2 * whole))
}
