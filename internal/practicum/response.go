package practicum

import (
	"encoding/json"

	"homework-bot/internal/apperrors"
	"homework-bot/internal/models"
)

var requiredKeys = []string{"homeworks", "current_date"}

// CheckResponse validates the shape of a homework_statuses payload.
// Key presence is checked before any field is decoded.
func CheckResponse(raw json.RawMessage) (*models.StatusResponse, error) {
	const op = "check response"

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, apperrors.Newf(apperrors.KindInvalidResponse, op, "response is not a JSON object")
	}

	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return nil, apperrors.Newf(apperrors.KindInvalidResponse, op, "response has no %q key", key)
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(fields["homeworks"], &items); err != nil || items == nil {
		return nil, apperrors.Newf(apperrors.KindInvalidResponse, op, `"homeworks" is not a list`)
	}

	var currentDate int64
	if err := json.Unmarshal(fields["current_date"], &currentDate); err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidResponse, op, `"current_date" is not an integer timestamp`)
	}

	homeworks := make([]models.Homework, 0, len(items))
	for i, item := range items {
		var hw models.Homework
		if err := json.Unmarshal(item, &hw); err != nil {
			return nil, apperrors.Newf(apperrors.KindInvalidResponse, op, "homeworks[%d] is malformed: %v", i, err)
		}
		homeworks = append(homeworks, hw)
	}

	return &models.StatusResponse{
		Homeworks:   homeworks,
		CurrentDate: currentDate,
	}, nil
}
