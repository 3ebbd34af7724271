package accounts

import (
	"errors"
	"strconv"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
)

func accountPath(id int64) string {
	return "/accounts/" + strconv.FormatInt(id, 10)
}

func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "failed to fetch accounts"
}
